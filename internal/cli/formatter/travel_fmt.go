package formatter

import (
	"fmt"

	"github.com/alexanderramin/agenda/internal/travel"
)

func FormatTravel(info travel.Info) string {
	if info.Duration == 0 {
		return Dim(fmt.Sprintf("No travel needed between %q and %q.", info.Origin, info.Destination))
	}
	buffer := StyleGreen.Render("no")
	if info.NeedsBuffer {
		buffer = StyleYellow.Render("yes")
	}
	return RenderFields([][2]string{
		{"From", info.Origin},
		{"To", info.Destination},
		{"Travel", Bold(FormatMinutes(info.Minutes))},
		{"Buffer", buffer},
	})
}
