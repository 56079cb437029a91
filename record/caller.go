package record

// Caller locates the code that emitted an entry, either as free text in
// Name or as File and Line gathered from separate fields. Both forms may be
// present.
type Caller struct {
	Name string
	File string
	Line string
}

func (c Caller) IsEmpty() bool {
	return c.Name == "" && c.File == "" && c.Line == ""
}

func (c Caller) String() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Line == "" {
		return c.File
	}
	return c.File + ":" + c.Line
}
