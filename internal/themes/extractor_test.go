package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag_SingleTheme(t *testing.T) {
	tagger := NewTagger(DefaultThemes(), nil)

	tags := tagger.Tag("The app crashes every time I open it", "cbe")
	assert.Equal(t, []string{"Stability & Bugs"}, tags)
}

func TestTag_MultipleThemesInSeedOrder(t *testing.T) {
	tagger := NewTagger(DefaultThemes(), nil)

	tags := tagger.Tag("Login is slow and the app crashes", "cbe")
	assert.Equal(t, []string{"Account Access", "Performance", "Stability & Bugs"}, tags)
}

func TestTag_ThemeTaggedOncePerReview(t *testing.T) {
	tagger := NewTagger(DefaultThemes(), nil)

	// Two keywords of the same theme must not duplicate the tag.
	tags := tagger.Tag("crash after crash, then a freeze", "cbe")
	assert.Equal(t, []string{"Stability & Bugs"}, tags)
}

func TestTag_CaseInsensitive(t *testing.T) {
	tagger := NewTagger(DefaultThemes(), nil)

	tags := tagger.Tag("LOGIN FAILED AGAIN", "cbe")
	assert.Equal(t, []string{"Account Access"}, tags)
}

func TestTag_NoMatchFallsBackToOther(t *testing.T) {
	tagger := NewTagger(DefaultThemes(), nil)

	tags := tagger.Tag("mmm", "cbe")
	assert.Equal(t, []string{Other}, tags)
}

func TestTag_PerAppOverride(t *testing.T) {
	override := []Theme{
		{Name: "Transfers", Keywords: []string{"transfer", "send money"}},
	}
	tagger := NewTagger(DefaultThemes(), map[string][]Theme{"boa": override})

	// The override app uses only its own seeds.
	assert.Equal(t, []string{"Transfers"}, tagger.Tag("cannot transfer funds", "boa"))
	assert.Equal(t, []string{Other}, tagger.Tag("the app crashes", "boa"))

	// Other apps keep the defaults.
	assert.Equal(t, []string{"Stability & Bugs"}, tagger.Tag("the app crashes", "cbe"))
}

func TestTag_MultiWordKeyword(t *testing.T) {
	tagger := NewTagger(DefaultThemes(), nil)

	tags := tagger.Tag("it is hard to use on small screens", "cbe")
	assert.Equal(t, []string{"Usability"}, tags)
}
