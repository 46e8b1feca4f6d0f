package spec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/pattern"
)

// ErrBadSpec marks malformed-specification errors. They are detected before
// any filesystem walk begins and are distinct from validation findings.
var ErrBadSpec = errors.New("bad specification")

// Metadata keys recognised at every directory level. Any other key whose
// value is a mapping declares a child directory; anything else is rejected.
const (
	compulsoryKey  = "compulsory"
	optionalKey    = "optional"
	dataPatternKey = "data-file-types"
	gitRootKey     = "git-root"
	variableKey    = "variable-name"
	optionalDirKey = "optional-directory"
)

// Document header keys.
const (
	titleKey     = "title"
	idKey        = "number"
	yearKey      = "year"
	gitBranchKey = "git-marking-branch"
	structureKey = "structure"
)

// Format identifies the on-disk representation of a specification document.
type Format int

const (
	// FormatUnknown represents an unrecognised file extension.
	FormatUnknown Format = iota
	// FormatYAML represents a YAML or JSON document (JSON is parsed by the
	// same decoder).
	FormatYAML
	// FormatMarkdown represents a markdown document carrying the
	// specification in a fenced yaml or json code block.
	FormatMarkdown
)

// DetectFormat determines the specification format from a file extension.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// Load reads and parses a specification document from disk, detecting the
// format from the file extension.
func Load(path string) (*Assignment, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: unknown file format %s (supported: .yaml, .yml, .json, .md)", ErrBadSpec, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes a specification document and validates its well-formedness.
// Structural problems in the document (as opposed to the submission) are
// reported as ErrBadSpec-wrapped errors.
func Parse(data []byte, format Format) (*Assignment, error) {
	if format == FormatMarkdown {
		block, err := extractSpecBlock(data)
		if err != nil {
			return nil, err
		}
		data = block
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrBadSpec)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document is not a mapping", ErrBadSpec)
	}

	asn := &Assignment{}
	var structure *yaml.Node

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case titleKey:
			if err := value.Decode(&asn.Title); err != nil {
				return nil, badKey(titleKey, err)
			}
		case idKey:
			var id interface{}
			if err := value.Decode(&id); err != nil {
				return nil, badKey(idKey, err)
			}
			asn.ID = fmt.Sprintf("%v", id)
		case yearKey:
			if err := value.Decode(&asn.Year); err != nil {
				return nil, badKey(yearKey, err)
			}
		case gitBranchKey:
			if err := value.Decode(&asn.MarkingBranch); err != nil {
				return nil, badKey(gitBranchKey, err)
			}
		case structureKey:
			structure = value
		default:
			return nil, fmt.Errorf("%w: unrecognized top-level key %q", ErrBadSpec, key.Value)
		}
	}

	applyHeaderDefaults(asn)

	if structure != nil {
		node, err := buildNode("root", structure, ".")
		if err != nil {
			return nil, err
		}
		asn.Structure = node
	} else {
		asn.Structure = &Node{Name: "root", OptionalSubtree: true}
	}
	return asn, nil
}

// applyHeaderDefaults fills the optional header fields the way the checker
// always has: assignment 1, the current calendar year, a placeholder title.
func applyHeaderDefaults(asn *Assignment) {
	if asn.ID == "" {
		asn.ID = "1"
	}
	if len(asn.ID) < 2 {
		asn.ID = "0" + asn.ID
	}
	if asn.Title == "" {
		asn.Title = "<No title given>"
	}
	if asn.Year == 0 {
		asn.Year = time.Now().Year()
	}
}

// buildNode decodes one directory level. Metadata keys are decoded by name;
// every other key must map to a nested mapping, which becomes a child
// directory. where is the node's path within the document, for diagnostics.
func buildNode(name string, m *yaml.Node, where string) (*Node, error) {
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: directory %q must be a mapping", ErrBadSpec, where)
	}

	node := &Node{Name: name}
	optionalDeclared := false

	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]
		switch key.Value {
		case compulsoryKey:
			if err := decodeStringList(value, &node.Compulsory); err != nil {
				return nil, badNodeKey(where, compulsoryKey, err)
			}
		case optionalKey:
			if err := decodeStringList(value, &node.Optional); err != nil {
				return nil, badNodeKey(where, optionalKey, err)
			}
		case dataPatternKey:
			if err := decodeStringList(value, &node.DataPatterns); err != nil {
				return nil, badNodeKey(where, dataPatternKey, err)
			}
			for _, p := range node.DataPatterns {
				if err := pattern.Validate(p); err != nil {
					return nil, badNodeKey(where, dataPatternKey, err)
				}
			}
		case gitRootKey:
			if err := value.Decode(&node.GitRoot); err != nil {
				return nil, badNodeKey(where, gitRootKey, err)
			}
		case variableKey:
			if err := value.Decode(&node.NamePattern); err != nil {
				return nil, badNodeKey(where, variableKey, err)
			}
			if err := pattern.Validate(node.NamePattern); err != nil {
				return nil, badNodeKey(where, variableKey, err)
			}
			node.Name = ""
		case optionalDirKey:
			if err := value.Decode(&node.OptionalSubtree); err != nil {
				return nil, badNodeKey(where, optionalDirKey, err)
			}
			optionalDeclared = true
		default:
			if value.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("%w: unrecognized metadata key %q in directory %q", ErrBadSpec, key.Value, where)
			}
			child, err := buildNode(key.Value, value, where+"/"+key.Value)
			if err != nil {
				return nil, err
			}
			if node.Child(key.Value) != nil {
				return nil, fmt.Errorf("%w: duplicate subdirectory %q in directory %q", ErrBadSpec, key.Value, where)
			}
			node.Children = append(node.Children, child)
		}
	}

	sort.Strings(node.Compulsory)
	sort.Strings(node.Optional)
	sort.Strings(node.DataPatterns)

	if err := validateChildren(node, where); err != nil {
		return nil, err
	}

	if !optionalDeclared {
		node.OptionalSubtree = !node.HasCompulsoryContent()
	}
	return node, nil
}

// validateChildren enforces the sibling-ambiguity invariant: at most one
// variable-named child per level, and no literal sibling whose name the
// wildcard pattern would also match. Violations are specification errors,
// rejected before any matching happens.
func validateChildren(node *Node, where string) error {
	var wildcard *Node
	for _, c := range node.Children {
		if !c.VariableName() {
			continue
		}
		if wildcard != nil {
			return fmt.Errorf("%w: directory %q declares multiple variable-named subdirectories (%q and %q)",
				ErrBadSpec, where, wildcard.NamePattern, c.NamePattern)
		}
		wildcard = c
	}
	if wildcard == nil {
		return nil
	}
	for _, c := range node.Children {
		if !c.VariableName() && pattern.Matches(wildcard.NamePattern, c.Name) {
			return fmt.Errorf("%w: subdirectory %q of %q is ambiguous: its name also matches sibling pattern %q",
				ErrBadSpec, c.Name, where, wildcard.NamePattern)
		}
	}
	return nil
}

// decodeStringList accepts either a sequence of strings or a single scalar.
func decodeStringList(value *yaml.Node, dst *[]string) error {
	if value.Kind == yaml.ScalarNode {
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*dst = []string{single}
		return nil
	}
	return value.Decode(dst)
}

func badKey(key string, err error) error {
	return fmt.Errorf("%w: invalid value for %q: %v", ErrBadSpec, key, err)
}

func badNodeKey(where, key string, err error) error {
	return fmt.Errorf("%w: invalid value for %q in directory %q: %v", ErrBadSpec, key, where, err)
}
