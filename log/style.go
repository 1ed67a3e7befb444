package log

import (
	"fmt"

	"github.com/heroku/color"
)

var symbolStyle = color.New(color.FgHiBlue)

// Symbol quotes a value, such as a layer or process name, for a log message.
func Symbol(value string) string {
	return symbolStyle.Sprint(fmt.Sprintf("'%s'", value))
}
