package domain

// DatasetItem is one raw record of the training file.
// Line is 1-based.
type DatasetItem struct {
	Line   int
	Record string
}
