package pkg

import (
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/log"
	petname "github.com/dustinkirkland/golang-petname"
)

const (
	LogTimeFormat  = "2006/01/02 15:04:05"
	MaxNicknameLen = 16
)

// InitLog opens dest for appending and returns a logger writing to it. The
// logger also becomes the package default, since the terminal belongs to
// the game.
func InitLog(dest, prefix string) (*log.Logger, error) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      LogTimeFormat,
	})
	log.SetDefault(logger)

	return logger, nil
}

var nickRegexp = regexp.MustCompile(`[^a-zA-Z0-9_\-.]+`)

// Nickname cleans up a user supplied name. An empty result is replaced by a
// generated one.
func Nickname(nick string) string {
	nick = nickRegexp.ReplaceAllString(nick, "")
	if len(nick) > MaxNicknameLen {
		nick = nick[:MaxNicknameLen]
	} else if nick == "" {
		nick = petname.Generate(2, "-")
	}

	return nick
}
