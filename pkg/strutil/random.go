package strutil

import "crypto/rand"

const alphanum = "0123456789abcdefghijklmnopqrstuvwxyz"

// Random 生成指定长度的随机字符串，用于对象存储路径
func Random(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = alphanum[int(b)%len(alphanum)]
	}
	return string(buf)
}
