package zotero

import (
	"fmt"

	"github.com/lepvg/pmsync/internal/pubmed"
)

// Classification tags attached to every imported item.
const (
	// TagAuto marks records collected by this tool.
	TagAuto = "auto:pubmed"

	// TagTopicPrefix prefixes the per-topic marker tag.
	TagTopicPrefix = "topic:"
)

// Tag is a Zotero item tag.
type Tag struct {
	Tag string `json:"tag"`
}

// Creator is a Zotero item creator.
type Creator struct {
	CreatorType string `json:"creatorType"`
	Name        string `json:"name"`
}

// Item is a Zotero journalArticle record as accepted by the items write
// API.
type Item struct {
	ItemType            string    `json:"itemType"`
	Title               string    `json:"title"`
	Creators            []Creator `json:"creators"`
	AbstractNote        string    `json:"abstractNote"`
	PublicationTitle    string    `json:"publicationTitle"`
	Volume              string    `json:"volume"`
	Issue               string    `json:"issue"`
	Pages               string    `json:"pages"`
	Date                string    `json:"date"`
	JournalAbbreviation string    `json:"journalAbbreviation"`
	Language            string    `json:"language"`
	DOI                 string    `json:"DOI"`
	ISSN                string    `json:"ISSN"`
	ShortTitle          string    `json:"shortTitle"`
	URL                 string    `json:"url"`
	AccessDate          string    `json:"accessDate"`
	LibraryCatalog      string    `json:"libraryCatalog"`
	Extra               string    `json:"extra"`
	Tags                []Tag     `json:"tags"`
	Collections         []string  `json:"collections"`
	Relations           struct{}  `json:"relations"`
}

// NewItem translates one (PMID, summary) pair plus topic context into a
// Zotero record. A zero-value summary still yields a record with
// placeholder fields; an identifier is never dropped for missing
// metadata.
func NewItem(pmid string, summary pubmed.Summary, topicName, collection string) Item {
	title := summary.Title
	if title == "" {
		title = fmt.Sprintf("PMID %s", pmid)
	}

	creators := make([]Creator, 0, len(summary.Authors))
	for _, a := range summary.Authors {
		if a.Name == "" {
			continue
		}
		creators = append(creators, Creator{CreatorType: "author", Name: a.Name})
	}

	return Item{
		ItemType:         "journalArticle",
		Title:            title,
		Creators:         creators,
		PublicationTitle: summary.FullJournalName,
		Volume:           summary.Volume,
		Issue:            summary.Issue,
		Pages:            summary.Pages,
		Date:             summary.PubDate,
		DOI:              summary.DOI(),
		URL:              fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", pmid),
		LibraryCatalog:   "PubMed",
		Extra:            fmt.Sprintf("PMID: %s", pmid),
		Tags: []Tag{
			{Tag: TagAuto},
			{Tag: TagTopicPrefix + topicName},
		},
		Collections: []string{collection},
	}
}
