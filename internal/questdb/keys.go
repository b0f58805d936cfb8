package questdb

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Separator ends every quest block.
var Separator = strings.Repeat("-", 50)

// WriteKeys prints the four-line localization key block for each quest.
func WriteKeys(w io.Writer, quests []Quest) error {
	bw := bufio.NewWriter(w)
	for _, q := range quests {
		fmt.Fprintf(bw, "Quest ID: %s\n", q.ID)
		fmt.Fprintf(bw, "Name Key: %s\n", q.NameKey)
		fmt.Fprintf(bw, "Description Key: %s\n", q.DescKey)
		fmt.Fprintln(bw, Separator)
	}
	return bw.Flush()
}
