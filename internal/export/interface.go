package export

// Writer renders pipeline text output into distributable documents.
type Writer interface {
	// Transcript writes plain transcript text as a styled docx document.
	Transcript(title, text, outputPath string) error
	// Markdown writes markdown-formatted text (headings, bullets, bold)
	// as a styled docx document.
	Markdown(title, markdown, outputPath string) error
	// Text writes the raw text next to the docx for copy-paste use.
	Text(text, outputPath string) error
}
