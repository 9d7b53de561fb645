// assets/embed.go
//
// Files compiled into the binary:
//   - dictionary.txt: default word list, one word per line, '#' comments.
//   - sql/*.sql:      archive migrations, applied in lexical order.

package assets

import (
	"embed"
	"io"
	"io/fs"
	"strings"
)

//go:embed dictionary.txt
var dictionary string

//go:embed sql/*.sql
var migrations embed.FS

// Dictionary returns a reader over the raw embedded word list.
func Dictionary() io.Reader {
	return strings.NewReader(dictionary)
}

// Migrations exposes the embedded sql directory as its own root.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		// The directory is embedded above; Sub only fails on a bad path.
		panic(err)
	}
	return sub
}
