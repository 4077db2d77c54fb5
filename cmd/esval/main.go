// Esval evaluates ECMAScript expressions given as ESTree documents, the trees
// produced by parsers such as acorn and esprima, in JSON or YAML form.
package main

import (
	"os"

	"src.esval.dev/pkg/buildinfo"
	"src.esval.dev/pkg/evalprog"
	"src.esval.dev/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &evalprog.Program{})))
}
