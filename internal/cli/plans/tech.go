package plans

import (
	"fmt"
	"strings"

	"github.com/julianstephens/quickhire/internal/cli"
)

type TechListCmd struct{}

func (c *TechListCmd) Run(ctx *cli.Context) error {
	rows := make([][]string, 0, ctx.Catalog.Len())
	for i, set := range ctx.Catalog.Sets() {
		name := set.Name
		if i == 0 {
			name += " (default)"
		}
		rows = append(rows, []string{name, fmt.Sprint(set.AuthoredDays()), strings.Join(set.Aliases, ", ")})
	}
	ctx.Println(cli.Table([]string{"Technology", "Days", "Aliases"}, rows))
	return nil
}
