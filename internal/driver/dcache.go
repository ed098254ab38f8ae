package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"blc/internal/ast"
	"blc/internal/parser"
	"blc/internal/project"
	"blc/internal/source"
	"blc/internal/token"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты разбора по хешу содержимого файла и словаря.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// NodeRecord is one statement of a flattened tree, in pre-order.
// A BLOCK is followed by its NChildren records; IF and WHILE by their
// body BLOCK; IF_ELSE by its then and else BLOCKs.
type NodeRecord struct {
	Kind      uint8
	Start     uint32
	End       uint32
	Cond      string
	Name      string
	NChildren int
}

// ErrorRecord is a cached syntax error.
type ErrorRecord struct {
	Kind       uint8
	Expected   string
	FoundKind  uint8
	FoundText  string
	FoundStart uint32
	FoundEnd   uint32
	Pos        int
}

// DiskPayload stores the outcome of parsing one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	Path   string
	Nodes  []NodeRecord
	Err    *ErrorRecord
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "trees", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func newDiskPayload(path string, root *ast.Stmt, se *parser.SyntaxError) *DiskPayload {
	payload := &DiskPayload{Schema: diskCacheSchemaVersion, Path: path}
	if se != nil {
		payload.Err = &ErrorRecord{
			Kind:       uint8(se.Kind),
			Expected:   se.Expected,
			FoundKind:  uint8(se.Found.Kind),
			FoundText:  se.Found.Text,
			FoundStart: se.Span.Start,
			FoundEnd:   se.Span.End,
			Pos:        se.Pos,
		}
		return payload
	}
	ast.Walk(root, func(s *ast.Stmt, _ int) bool {
		payload.Nodes = append(payload.Nodes, NodeRecord{
			Kind:      uint8(s.Kind()),
			Start:     s.Span().Start,
			End:       s.Span().End,
			Cond:      s.Condition(),
			Name:      s.Name(),
			NChildren: s.Len(),
		})
		return true
	})
	return payload
}

// restore rebuilds the tree or the error, with spans in file.
// ok is false for malformed payloads.
func (p *DiskPayload) restore(file source.FileID) (*ast.Stmt, *parser.SyntaxError, bool) {
	if p.Err != nil {
		e := p.Err
		sp := source.Span{File: file, Start: e.FoundStart, End: e.FoundEnd}
		return nil, &parser.SyntaxError{
			Kind:     parser.ErrorKind(e.Kind),
			Expected: e.Expected,
			Found:    token.Token{Kind: token.Kind(e.FoundKind), Text: e.FoundText, Span: sp},
			Pos:      e.Pos,
			Span:     sp,
		}, true
	}
	r := &nodeReader{nodes: p.Nodes, file: file}
	root, ok := r.read()
	if !ok || r.pos != len(r.nodes) || root.Kind() != ast.StmtBlock {
		return nil, nil, false
	}
	return root, nil, true
}

type nodeReader struct {
	nodes []NodeRecord
	pos   int
	file  source.FileID
}

func (r *nodeReader) read() (*ast.Stmt, bool) {
	if r.pos >= len(r.nodes) {
		return nil, false
	}
	n := r.nodes[r.pos]
	r.pos++
	sp := source.Span{File: r.file, Start: n.Start, End: n.End}

	switch ast.StmtKind(n.Kind) {
	case ast.StmtCall:
		return ast.NewCall(sp, n.Name), true
	case ast.StmtBlock:
		if n.NChildren < 0 || n.NChildren > len(r.nodes)-r.pos {
			return nil, false
		}
		children := make([]*ast.Stmt, 0, n.NChildren)
		for range n.NChildren {
			c, ok := r.read()
			if !ok {
				return nil, false
			}
			children = append(children, c)
		}
		return ast.NewBlock(sp, children...), true
	case ast.StmtIf, ast.StmtWhile:
		body, ok := r.readBlock()
		if !ok {
			return nil, false
		}
		if ast.StmtKind(n.Kind) == ast.StmtIf {
			return ast.NewIf(sp, n.Cond, body), true
		}
		return ast.NewWhile(sp, n.Cond, body), true
	case ast.StmtIfElse:
		then, ok := r.readBlock()
		if !ok {
			return nil, false
		}
		els, ok := r.readBlock()
		if !ok {
			return nil, false
		}
		return ast.NewIfElse(sp, n.Cond, then, els), true
	default:
		return nil, false
	}
}

func (r *nodeReader) readBlock() (*ast.Stmt, bool) {
	if r.pos >= len(r.nodes) || ast.StmtKind(r.nodes[r.pos].Kind) != ast.StmtBlock {
		return nil, false
	}
	return r.read()
}
