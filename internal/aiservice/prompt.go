package aiservice

import "fmt"

func blogDraftPrompt(topic, tone string) string {
	return fmt.Sprintf(`Write a blog post in Markdown about %q.
Tone: %s.
Start with a single "# " heading, use "## " subheadings, and keep it under 1200 words.
Return only the Markdown.`, topic, tone)
}

func excerptPrompt(content string) string {
	return fmt.Sprintf(`Summarise the following blog post in one plain-text sentence of at most 160 characters.
Return only the sentence.

%s`, content)
}

func tagsPrompt(content string) string {
	return fmt.Sprintf(`Suggest up to %d short, lower-case topic tags for the following blog post.
Return only the tags separated by commas.

%s`, maxTags, content)
}

func linkedInPostPrompt(topic, style string) string {
	return fmt.Sprintf(`Write a LinkedIn post about %q.
Style: %s.
Open with a strong hook, use short paragraphs, end with a question to the reader and at most 3 hashtags.
Return only the post text.`, topic, style)
}

func carouselPrompt(topic string, n int, style string) string {
	return fmt.Sprintf(`Create a LinkedIn carousel of exactly %d slides about %q.
Style: %s.
Each slide has a title of at most 8 words and a body of at most 40 words.
Return only a JSON array of objects with "title" and "body" string fields.`, n, topic, style)
}
