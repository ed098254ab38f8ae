package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sanity-io/litter"
	"gopkg.in/yaml.v3"

	"blc/internal/ast"
	"blc/internal/source"
)

// ASTNodeOutput is the serializable view of one statement.
type ASTNodeOutput struct {
	Kind      string          `json:"kind" yaml:"kind"`
	Span      string          `json:"span" yaml:"span"`
	Condition string          `json:"condition,omitempty" yaml:"condition,omitempty"`
	Name      string          `json:"name,omitempty" yaml:"name,omitempty"`
	Then      *ASTNodeOutput  `json:"then,omitempty" yaml:"then,omitempty"`
	Else      *ASTNodeOutput  `json:"else,omitempty" yaml:"else,omitempty"`
	Body      *ASTNodeOutput  `json:"body,omitempty" yaml:"body,omitempty"`
	Children  []ASTNodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

// FileASTOutput wraps a tree with the file it came from.
type FileASTOutput struct {
	File string        `json:"file" yaml:"file"`
	Root ASTNodeOutput `json:"root" yaml:"root"`
}

// BuildASTOutput converts a tree into its serializable view.
func BuildASTOutput(s *ast.Stmt, fs *source.FileSet) ASTNodeOutput {
	out := ASTNodeOutput{
		Kind:      s.Kind().String(),
		Span:      formatSpan(s.Span(), fs),
		Condition: s.Condition(),
		Name:      s.Name(),
	}
	switch s.Kind() {
	case ast.StmtBlock:
		for _, c := range s.Children() {
			out.Children = append(out.Children, BuildASTOutput(c, fs))
		}
	case ast.StmtIf, ast.StmtIfElse:
		then := BuildASTOutput(s.Then(), fs)
		out.Then = &then
		if s.Kind() == ast.StmtIfElse {
			els := BuildASTOutput(s.Else(), fs)
			out.Else = &els
		}
	case ast.StmtWhile:
		body := BuildASTOutput(s.Body(), fs)
		out.Body = &body
	}
	return out
}

// BuildFileASTOutput pairs a tree with its display path.
func BuildFileASTOutput(root *ast.Stmt, fs *source.FileSet, path string) FileASTOutput {
	return FileASTOutput{File: path, Root: BuildASTOutput(root, fs)}
}

// FormatASTJSON writes the tree as indented JSON.
func FormatASTJSON(w io.Writer, root *ast.Stmt, fs *source.FileSet, path string) error {
	return WriteASTJSON(w, BuildFileASTOutput(root, fs, path))
}

// FormatASTYAML writes the tree as a YAML document.
func FormatASTYAML(w io.Writer, root *ast.Stmt, fs *source.FileSet, path string) error {
	return WriteASTYAML(w, BuildFileASTOutput(root, fs, path))
}

// WriteASTJSON encodes any AST view (one file or a list) as indented JSON.
func WriteASTJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteASTYAML encodes any AST view (one file or a list) as YAML.
func WriteASTYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// FormatASTDump writes a Go-syntax dump of the tree for debugging.
func FormatASTDump(w io.Writer, root *ast.Stmt) error {
	opts := litter.Options{
		StripPackageNames: true,
		HidePrivateFields: false,
		Separator:         " ",
	}
	_, err := io.WriteString(w, opts.Sdump(root)+"\n")
	return err
}

// FormatASTPretty writes an indented outline of the tree.
func FormatASTPretty(w io.Writer, root *ast.Stmt, fs *source.FileSet) error {
	if root == nil {
		return fmt.Errorf("nil tree")
	}
	if _, err := fmt.Fprintf(w, "%s\n", stmtLabel(root, fs)); err != nil {
		return err
	}
	return formatStmtChildren(w, root, fs, "")
}

func stmtLabel(s *ast.Stmt, fs *source.FileSet) string {
	switch s.Kind() {
	case ast.StmtCall:
		return fmt.Sprintf("CALL %s (span: %s)", s.Name(), formatSpan(s.Span(), fs))
	case ast.StmtIf, ast.StmtIfElse, ast.StmtWhile:
		return fmt.Sprintf("%s %s (span: %s)", s.Kind(), s.Condition(), formatSpan(s.Span(), fs))
	default:
		return fmt.Sprintf("BLOCK[%d] (span: %s)", s.Len(), formatSpan(s.Span(), fs))
	}
}

type labeled struct {
	label string
	stmt  *ast.Stmt
}

func stmtChildren(s *ast.Stmt) []labeled {
	switch s.Kind() {
	case ast.StmtBlock:
		kids := s.Children()
		out := make([]labeled, len(kids))
		for i, c := range kids {
			out[i] = labeled{fmt.Sprintf("Stmt[%d]", i), c}
		}
		return out
	case ast.StmtIf:
		return []labeled{{"Then", s.Then()}}
	case ast.StmtIfElse:
		return []labeled{{"Then", s.Then()}, {"Else", s.Else()}}
	case ast.StmtWhile:
		return []labeled{{"Body", s.Body()}}
	default:
		return nil
	}
}

func formatStmtChildren(w io.Writer, s *ast.Stmt, fs *source.FileSet, prefix string) error {
	kids := stmtChildren(s)
	for i, k := range kids {
		marker, childPrefix := "├─", prefix+"│  "
		if i == len(kids)-1 {
			marker, childPrefix = "└─", prefix+"   "
		}
		if _, err := fmt.Fprintf(w, "%s%s %s: %s\n", prefix, marker, k.label, stmtLabel(k.stmt, fs)); err != nil {
			return err
		}
		if err := formatStmtChildren(w, k.stmt, fs, childPrefix); err != nil {
			return err
		}
	}
	return nil
}
