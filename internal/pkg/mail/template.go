package mail

import (
	"bytes"
	"embed"
	"net/http"
	"sync"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	engine     = html.NewFileSystem(http.FS(templatesFS), ".html")
	loadEngine sync.Once
	loadErr    error
)

const DownloadSubject = "Your Inkdrop art pack is ready"

// DownloadEmail is the binding for the shared download template. Both
// payment paths render the same email; only the URLs are parameters.
type DownloadEmail struct {
	DownloadURL string
	ThankYouURL string
}

func RenderDownloadEmail(data DownloadEmail) (string, error) {
	loadEngine.Do(func() {
		loadErr = engine.Load()
	})
	if loadErr != nil {
		return "", loadErr
	}

	var buf bytes.Buffer
	if err := engine.Render(&buf, "templates/download", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
