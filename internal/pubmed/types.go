package pubmed

// Summary is the subset of an ESummary DocSum used to build Zotero items.
type Summary struct {
	Title           string      `json:"title"`
	FullJournalName string      `json:"fulljournalname"`
	PubDate         string      `json:"pubdate"`
	Volume          string      `json:"volume"`
	Issue           string      `json:"issue"`
	Pages           string      `json:"pages"`
	Authors         []Author    `json:"authors"`
	ArticleIDs      []ArticleID `json:"articleids"`
}

// Author is an ESummary author entry ("Smith J" style names).
type Author struct {
	Name     string `json:"name"`
	AuthType string `json:"authtype"`
}

// ArticleID is an external identifier attached to a record.
type ArticleID struct {
	IDType string `json:"idtype"`
	Value  string `json:"value"`
}

// DOI returns the record's DOI, or "" if none is listed.
func (s Summary) DOI() string {
	for _, id := range s.ArticleIDs {
		if id.IDType == "doi" {
			return id.Value
		}
	}
	return ""
}
