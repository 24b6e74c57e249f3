// Command docstruct reconstructs the structure of PDF documents.
//
//	docstruct process report.pdf -f html -o report.html
//	docstruct render report.pdf -o annotated/ --crops
//	docstruct strategies
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
