package spec

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// extractSpecBlock pulls the specification out of a markdown assignment
// handout: the first fenced code block tagged yaml, yml or json. This lets
// course staff keep the machine-readable layout inside the document students
// actually read.
func extractSpecBlock(source []byte) ([]byte, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var block []byte
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || block != nil {
			return ast.WalkContinue, nil
		}

		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		switch string(fenced.Language(source)) {
		case "yaml", "yml", "json":
		default:
			return ast.WalkContinue, nil
		}

		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			block = append(block, seg.Value(source)...)
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan markdown: %v", ErrBadSpec, err)
	}
	if block == nil {
		return nil, fmt.Errorf("%w: no yaml or json code block found in markdown document", ErrBadSpec)
	}
	return block, nil
}
