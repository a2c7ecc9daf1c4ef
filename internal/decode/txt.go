package decode

type txtDecoder struct{}

func (txtDecoder) CanDecode(filename string) bool {
	return hasExt(filename, ".txt")
}

func (txtDecoder) Decode(content []byte) (*Result, error) {
	return &Result{Text: string(content)}, nil
}
