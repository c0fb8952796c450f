package hello

// Input carries the optional name query parameter shared by GET and POST.
type Input struct {
	Name string `query:"name" doc:"Name to greet; omitted or empty greets World" example:"Jenkins"`
}
