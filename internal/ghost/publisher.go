package ghost

import (
	"fmt"
	"html"
	"strings"

	"ai-sous-chef/internal/imagegen"
	"ai-sous-chef/internal/persona"
	"ai-sous-chef/internal/recipe"
)

// Publisher turns generated recipes into Ghost posts.
type Publisher struct {
	client Client
}

// NewPublisher creates a Publisher backed by the given client.
func NewPublisher(client Client) *Publisher {
	return &Publisher{client: client}
}

// PublishRecipe formats the recipe as HTML, embeds its image inline
// and creates the post. Pass publish=false to leave it as a draft.
func (p *Publisher) PublishRecipe(r recipe.Recipe, img imagegen.EncodedImage, publish bool) (*Post, error) {
	body := formatRecipeHTML(r, img)
	post, err := p.client.CreatePost(r.Name, body, publish)
	if err != nil {
		return nil, fmt.Errorf("failed to publish recipe %q: %w", r.Name, err)
	}
	return post, nil
}

func formatRecipeHTML(r recipe.Recipe, img imagegen.EncodedImage) string {
	var sb strings.Builder

	if len(img.Data) > 0 {
		sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" />`, img.DataURI(), html.EscapeString(r.Name)))
		sb.WriteString("\n")
	}

	sb.WriteString("<p>")
	sb.WriteString(fmt.Sprintf("<strong>Total Time:</strong> %d min &middot; ", r.TotalTimeMinutes))
	sb.WriteString(fmt.Sprintf("<strong>Difficulty:</strong> %s &middot; ", html.EscapeString(string(r.Difficulty))))
	sb.WriteString(fmt.Sprintf("<strong>Calories:</strong> %d", r.Calories))
	if r.ServingSize != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", html.EscapeString(r.ServingSize)))
	}
	sb.WriteString("</p>\n")

	sb.WriteString("<h2>Ingredients</h2>\n<ul>\n")
	for _, ing := range r.Ingredients {
		sb.WriteString(fmt.Sprintf("<li>%s</li>\n", html.EscapeString(ing)))
	}
	sb.WriteString("</ul>\n")

	sb.WriteString("<h2>Instructions</h2>\n<ol>\n")
	for _, step := range r.Instructions {
		sb.WriteString(fmt.Sprintf("<li>%s</li>\n", html.EscapeString(step)))
	}
	sb.WriteString("</ol>\n")

	if len(r.PersonaTips) > 0 {
		d := persona.Lookup(r.PersonaID)
		sb.WriteString(fmt.Sprintf("<h2>Tips from %s</h2>\n<ul>\n", html.EscapeString(d.Name)))
		for _, tip := range r.PersonaTips {
			sb.WriteString(fmt.Sprintf("<li>%s</li>\n", html.EscapeString(tip)))
		}
		sb.WriteString("</ul>\n")
	}

	if r.Nutrition != (recipe.Nutrition{}) {
		sb.WriteString("<h2>Nutrition per Serving</h2>\n<ul>\n")
		sb.WriteString(fmt.Sprintf("<li><strong>Protein:</strong> %s</li>\n", html.EscapeString(r.Nutrition.Protein)))
		sb.WriteString(fmt.Sprintf("<li><strong>Carbs:</strong> %s</li>\n", html.EscapeString(r.Nutrition.Carbs)))
		sb.WriteString(fmt.Sprintf("<li><strong>Fat:</strong> %s</li>\n", html.EscapeString(r.Nutrition.Fat)))
		sb.WriteString("</ul>\n")
	}

	return sb.String()
}
