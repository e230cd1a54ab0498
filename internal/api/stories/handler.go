package stories

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storybook-app/database"
	storydom "storybook-app/internal/domain/stories"
	"storybook-app/internal/generation"
)

var (
	persister    *generation.StoryPersister
	orchestrator *generation.Orchestrator
	generator    generation.Generator
)

// Init wires the handlers to the shared persister and pipeline built in main.
func Init(p *generation.StoryPersister, o *generation.Orchestrator, g generation.Generator) {
	persister = p
	orchestrator = o
	generator = g
}

func toInput(req StoryRequest) generation.StoryInput {
	in := generation.StoryInput{
		Title:      req.Title,
		Content:    req.Content,
		AgeRange:   req.AgeGroup,
		Locale:     req.Locale,
		DayLabel:   req.DayOfWeek,
		WeekNumber: req.WeekNumber,
		SeriesID:   req.SeriesID,
		SeriesName: req.SeriesName,
	}
	for _, t := range req.Themes {
		in.Themes = append(in.Themes, generation.ThemeRef{ID: t.ID, IsPrimary: t.IsPrimary})
	}
	for _, il := range req.Illustrations {
		in.Illustrations = append(in.Illustrations, generation.IllustrationInput{Path: il.Path, Position: il.Position})
	}
	return in
}

// ------------------------------
// GET /stories
// ------------------------------
func ListStories(c *gin.Context) {
	var out []storydom.Story
	err := storyListQuery(database.DB, c.Query("ageGroup"), c.Query("weekNumber")).
		Find(&out).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stories"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /stories/:id
// ------------------------------
func GetStoryByID(c *gin.Context) {
	var s storydom.Story
	err := database.DB.
		Preload("Themes").
		Preload("Illustrations").
		Preload("Series").
		First(&s, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load story"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// ------------------------------
// POST /stories
// ------------------------------
func CreateStory(c *gin.Context) {
	var req StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := persister.Create(toInput(req))
	if err != nil {
		if errors.Is(err, generation.ErrNoThemesResolved) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A story needs at least one theme"})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Referenced series not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create story", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, s)
}

// ------------------------------
// PUT /stories/:id
// ------------------------------
func UpdateStory(c *gin.Context) {
	var req StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := persister.Update(c.Param("id"), toInput(req))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
			return
		}
		if errors.Is(err, generation.ErrNoThemesResolved) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A story needs at least one theme"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update story", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, s)
}

// ------------------------------
// DELETE /stories/:id
// ------------------------------
func DeleteStory(c *gin.Context) {
	res := database.DB.Delete(&storydom.Story{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete story"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ------------------------------
// GET /stories/:id/versions
// ------------------------------
func ListStoryVersions(c *gin.Context) {
	var versions []storydom.StoryVersion
	err := database.DB.
		Preload("Themes").
		Order("version DESC").
		Find(&versions, "story_id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load versions"})
		return
	}
	c.JSON(http.StatusOK, versions)
}

// ------------------------------
// POST /generate/text
// ------------------------------
// Returns the raw generated text for one age range without persisting it,
// so callers can review a draft before creating stories from it.
func GenerateText(c *gin.Context) {
	var req GenerateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !storydom.ValidAgeRange(req.Age) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown age range: " + req.Age})
		return
	}

	sel := generation.Selection{
		Theme:          req.Theme,
		Day:            req.Day,
		NumCharacters:  req.NumCharacters,
		CharacterNames: req.CharNames,
		SeriesName:     req.SeriesName,
	}
	text, err := generator.Generate(c.Request.Context(), generation.BuildPrompt(sel, req.Age))
	if err != nil {
		status := http.StatusInternalServerError
		var te *generation.TransportError
		if errors.As(err, &te) || errors.Is(err, generation.ErrOverloadExhausted) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

// ------------------------------
// POST /generate
// ------------------------------
func Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, age := range req.Ages {
		if !storydom.ValidAgeRange(age) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown age range: " + age})
			return
		}
	}

	// The request context doubles as the batch's cancellation token: a
	// disconnected caller stops the run at the next suspension point.
	progress, err := orchestrator.Run(c.Request.Context(), generation.Selection{
		AgeRanges:      req.Ages,
		Theme:          req.Theme,
		Day:            req.Day,
		WeekNumber:     req.WeekNumber,
		NumCharacters:  req.NumCharacters,
		CharacterNames: req.CharNames,
		SeriesName:     req.SeriesName,
	})
	if err != nil {
		status := http.StatusInternalServerError
		var te *generation.TransportError
		if errors.As(err, &te) || errors.Is(err, generation.ErrOverloadExhausted) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error(), "log": progress})
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": progress})
}
