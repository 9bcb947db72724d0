// ABOUTME: Candidate items and scored matches exchanged between sources, ranking, and UI
// ABOUTME: Items are values; the Identity field is both the dedup and the history key

package finder

// Item is one launchable entity produced by a source.
type Item struct {
	Display     string // primary scored field
	Identity    string // unique action key; also the usage-history key
	Priority    int    // weighting class; higher surfaces first
	SourceRank  int    // dedup precedence; lower wins
	Description string
	SearchDesc  bool // whether Description participates in scoring
	OriginPath  string
	Icon        string
}

// Match pairs an item with its combined score for one query.
type Match struct {
	Score float64
	Item  Item
}
