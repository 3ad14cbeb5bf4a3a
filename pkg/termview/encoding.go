package termview

import "encoding/base64"

// CHUNK_SIZE is the largest base64 payload the Kitty protocol accepts per escape
const CHUNK_SIZE = 4096

// ChunkedBase64Encode encodes data once and splits the result into pieces
// of at most chunkSize characters. chunkSize should be a multiple of 4 so
// no piece splits a base64 quantum.
func ChunkedBase64Encode(data []byte, chunkSize int) []string {
	encoded := base64.StdEncoding.EncodeToString(data)
	if len(encoded) == 0 {
		return []string{""}
	}

	chunks := make([]string, 0, (len(encoded)+chunkSize-1)/chunkSize)
	for len(encoded) > chunkSize {
		chunks = append(chunks, encoded[:chunkSize])
		encoded = encoded[chunkSize:]
	}
	return append(chunks, encoded)
}
