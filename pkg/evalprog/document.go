package evalprog

import (
	"fmt"
	"io"
	"os"
)

const stdinName = "[stdin]"

type document struct {
	name string
	text string
}

// readDocuments reads the named files. An empty list or a "-" reads stdin.
func readDocuments(stdin io.Reader, args []string) ([]document, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	docs := make([]document, 0, len(args))
	readStdin := false
	for _, arg := range args {
		if arg == "-" {
			if readStdin {
				return nil, fmt.Errorf("stdin can only be read once")
			}
			readStdin = true
			text, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("cannot read stdin: %w", err)
			}
			docs = append(docs, document{stdinName, string(text)})
			continue
		}
		text, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read document: %w", err)
		}
		docs = append(docs, document{arg, string(text)})
	}
	return docs, nil
}
