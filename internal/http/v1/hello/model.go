package hello

import "github.com/janisto/hello-function/internal/greeting"

// Output maps a greeting.Response onto huma's response model.
type Output struct {
	Status      int
	ContentType string `header:"Content-Type"`
	Body        greeting.Body
}

func newOutput(resp greeting.Response) *Output {
	return &Output{
		Status:      resp.Status,
		ContentType: resp.Headers["Content-Type"],
		Body:        resp.Body,
	}
}
