package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// dirStore reads a directory of JSON-lines dumps, one <collection>.jsonl
// file per legacy class. A missing file is an empty collection, matching
// legacy graphs that never had the corresponding subtree.
type dirStore struct {
	root string
}

func openDir(path string) (Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy dump %q: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("legacy dump %q is not a directory", path)
	}
	return &dirStore{root: path}, nil
}

func (s *dirStore) Collection(name string) Collection {
	return &dirCollection{path: filepath.Join(s.root, name+".jsonl")}
}

func (s *dirStore) Close(context.Context) error { return nil }

type dirCollection struct {
	path string
}

func (c *dirCollection) load() ([]json.RawMessage, error) {
	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		records = append(records, json.RawMessage(append([]byte(nil), line...)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.path, err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return recordID(records[i]) < recordID(records[j])
	})
	return records, nil
}

func recordID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.ID
}

func (c *dirCollection) Iter(context.Context) (Cursor, error) {
	records, err := c.load()
	if err != nil {
		return nil, err
	}
	return &dirCursor{records: records, pos: -1}, nil
}

func (c *dirCollection) FindID(_ context.Context, id string, v any) error {
	records, err := c.load()
	if err != nil {
		return err
	}
	for _, raw := range records {
		if recordID(raw) == id {
			return json.Unmarshal(raw, v)
		}
	}
	return ErrNotFound
}

func (c *dirCollection) Count(context.Context) (int64, error) {
	records, err := c.load()
	if err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

type dirCursor struct {
	records []json.RawMessage
	pos     int
}

func (c *dirCursor) Next(context.Context) bool {
	if c.pos+1 >= len(c.records) {
		return false
	}
	c.pos++
	return true
}

func (c *dirCursor) Decode(v any) error {
	return json.Unmarshal(c.records[c.pos], v)
}

func (c *dirCursor) Err() error                  { return nil }
func (c *dirCursor) Close(context.Context) error { return nil }
