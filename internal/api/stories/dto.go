package stories

type ThemeRefDTO struct {
	ID        string `json:"id" binding:"required"`
	IsPrimary bool   `json:"isPrimary"`
}

type IllustrationDTO struct {
	Path     string `json:"path" binding:"required"`
	Position int    `json:"position"`
}

// StoryRequest is the create/update payload. Version is the caller's expected
// version on update; it is informational, the persister reads the current row
// inside its transaction.
type StoryRequest struct {
	Title         string            `json:"title" binding:"required"`
	Content       string            `json:"content" binding:"required"`
	Themes        []ThemeRefDTO     `json:"themes" binding:"required,min=1,dive"`
	AgeGroup      string            `json:"ageGroup" binding:"required"`
	Locale        string            `json:"locale"`
	DayOfWeek     string            `json:"dayOfWeek" binding:"required"`
	WeekNumber    int               `json:"weekNumber" binding:"required,gt=0"`
	Version       int               `json:"version"`
	SeriesID      string            `json:"seriesId"`
	SeriesName    string            `json:"seriesName"`
	Illustrations []IllustrationDTO `json:"illustrations"`
}

// GenerateTextRequest asks for one raw generation without persisting
// anything; the caller reviews the text before creating stories from it.
type GenerateTextRequest struct {
	Theme         string   `json:"theme" binding:"required"`
	Age           string   `json:"age" binding:"required"`
	Day           string   `json:"day" binding:"required"`
	NumCharacters int      `json:"numCharacters"`
	CharNames     []string `json:"charNames"`
	SeriesName    string   `json:"seriesName"`
}

type GenerateRequest struct {
	Theme         string   `json:"theme" binding:"required"`
	Ages          []string `json:"ages" binding:"required,min=1"`
	Day           string   `json:"day" binding:"required"`
	WeekNumber    int      `json:"weekNumber" binding:"required,gt=0"`
	NumCharacters int      `json:"numCharacters"`
	CharNames     []string `json:"charNames"`
	SeriesName    string   `json:"seriesName"`
}
