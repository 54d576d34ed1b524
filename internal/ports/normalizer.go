package ports

// Normalizer defines the interface for heading normalization.
type Normalizer interface {
	Normalize(text string) string
}
