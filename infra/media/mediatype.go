package media

import (
	"path/filepath"
	"strings"
)

// Classifier maps file names and content types to coarse media kinds.
type Classifier struct{}

// NewClassifier creates a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Ordered: the first matching kind wins (".pdf" is a document, not an e-book).
var extensionKinds = []struct {
	kind string
	exts []string
}{
	{"video", []string{".mp4", ".m4v", ".webm", ".flv", ".f4v", ".ogv", ".mov", ".mkv"}},
	{"audio", []string{".mp3", ".m4a", ".aac", ".wav", ".flac", ".ogg", ".opus"}},
	{"image", []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".svg"}},
	{"script", []string{".h", ".go", ".ja", ".java", ".js", ".jsx", ".c", ".cpp", ".cs", ".css", ".rb", ".scss", ".sh", ".php", ".py"}},
	{"document", []string{".json", ".csv", ".txt", ".log", ".md", ".markdown", ".docx", ".pdf", ".xml", ".yml", ".yaml"}},
	{"e-book", []string{".pdf", ".odf", ".doc", ".docx", ".epub", ".org", ".rtf"}},
	{"3D-file", []string{".stl", ".obj", ".fbx", ".gcode"}},
	{"comic-book", []string{".cbr", ".cbt", ".cbz"}},
	{"application", []string{".lbry"}},
}

// MediaType classifies by file extension first, then by the major part of
// contentType. It returns "unknown" when neither helps.
func (c *Classifier) MediaType(contentType, fileName string) string {
	if fileName != "" {
		ext := strings.ToLower(filepath.Ext(fileName))
		if ext != "" {
			for _, k := range extensionKinds {
				for _, e := range k.exts {
					if e == ext {
						return k.kind
					}
				}
			}
		}
	}
	if major, _, _ := strings.Cut(strings.TrimSpace(contentType), "/"); major != "" {
		return strings.ToLower(major)
	}
	return "unknown"
}
