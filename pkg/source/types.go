package source

// NodeRecord is one node line from File A.
type NodeRecord struct {
	ID       int    // Dense node id in [0, N)
	Label    string // Structural label, pipes replaced by line breaks
	Category string // L2 category code
}

// Pair is an unordered pair of ids as listed in an edge section.
type Pair struct {
	U, V int
}

// Warning describes a line in an edge section that was skipped.
type Warning struct {
	Line   int    // 1-based line number
	Text   string // Raw line content
	Reason string
}

// NodeSource is the parsed content of File A.
type NodeSource struct {
	Name     string       // File name used in diagnostics
	Records  []NodeRecord // In file order
	Edges    []Pair       // Structural edges in file order
	Warnings []Warning
}

// CategorySource is the parsed content of File B.
type CategorySource struct {
	Name     string
	Codes    map[int]string // Category id -> category code
	Order    []int          // Category ids in file order
	Edges    []Pair         // Category-level edges in file order
	Warnings []Warning
}
