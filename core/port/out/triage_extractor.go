package out

// TextExtractor pulls plain text out of an uploaded attachment. The filename
// extension decides the extraction strategy.
type TextExtractor interface {
	Extract(filename string, data []byte) (string, error)
	Supports(filename string) bool
}
