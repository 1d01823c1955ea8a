// Command scm runs the interpreter's CLI: "scm repl" for an interactive
// session, "scm run" to evaluate a file or an inline expression.
package main

import "github.com/kschem/scm/cmd"

func main() {
	cmd.Execute()
}
