package bmac

// Checksum returns the 8-bit additive checksum of data, i.e. the sum of all
// bytes modulo 256. It is used over the address+payload body of outgoing
// frames and over the content of replies.
func Checksum(data []byte) byte {
	sum := byte(0)
	for _, b := range data {
		sum += b
	}
	return sum
}
