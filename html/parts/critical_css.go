package parts

import (
	_ "embed"
	"log"
	"os"
	"sync"
)

//go:embed catalog.css
var embeddedCSS string

var (
	cssOnce sync.Once
	css     string
)

// CriticalCSS returns the inline stylesheet of the catalog pages. CRITICAL_CSS
// points at a file that replaces the embedded one; it is read once.
func CriticalCSS() string {
	cssOnce.Do(func() {
		css = embeddedCSS
		path := os.Getenv("CRITICAL_CSS")
		if path == "" {
			return
		}
		b, err := os.ReadFile(path)
		if err != nil {
			log.Println("Critical CSS error:", err)
			return
		}
		css = string(b)
	})
	return css
}
