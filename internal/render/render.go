package render

// Markdown renders markdown content once with opts, without keeping the
// renderer around.
func Markdown(content string, opts Options) (string, error) {
	tr, err := newTermRenderer(opts)
	if err != nil {
		return "", err
	}
	return tr.Render(content)
}
