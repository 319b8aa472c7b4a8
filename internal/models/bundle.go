package models

// Bundle is the question-bank interchange document produced by export
// and consumed by import. Chapters are upserted by number; questions are
// always created fresh.
type Bundle struct {
	Chapters  []BundleChapter  `json:"chapters"`
	Questions []BundleQuestion `json:"questions"`
}

type BundleChapter struct {
	Num           int    `json:"num"`
	Title         string `json:"title"`
	OfficialQuota int    `json:"official_quota"`
}

type BundleQuestion struct {
	Chapter    int            `json:"chapter"`
	Kind       Kind           `json:"kind"`
	Stem       string         `json:"stem"`
	Note       string         `json:"note"`
	IsExcluded bool           `json:"is_excluded"`
	Choices    []BundleChoice `json:"choices"`
}

type BundleChoice struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type ImportResult struct {
	ChaptersUpserted int  `json:"chapters_upserted"`
	QuestionsCreated int  `json:"questions_created"`
	Wiped            bool `json:"wiped"`
}
