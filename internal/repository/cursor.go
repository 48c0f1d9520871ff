package repository

import (
	"encoding/base64"
	"time"
)

const (
	timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

	DefaultPageNum = 10
	PageMinNum     = 5
	PageMaxNum     = 30
)

// DecodeCursor will decode cursor from user for mysql
func DecodeCursor(encodedTime string) (time.Time, error) {
	byt, err := base64.StdEncoding.DecodeString(encodedTime)
	if err != nil {
		return time.Time{}, err
	}

	timeString := string(byt)
	t, err := time.Parse(timeFormat, timeString)

	return t, err
}

// EncodeCursor will encode cursor from mysql to user
func EncodeCursor(t time.Time) string {
	timeString := t.Format(timeFormat)

	return base64.StdEncoding.EncodeToString([]byte(timeString))
}

// PageVerify clamps a page size into [PageMinNum, PageMaxNum], falling back to DefaultPageNum.
func PageVerify(num *int64) {
	if *num < PageMinNum || *num > PageMaxNum {
		*num = DefaultPageNum
	}
}
