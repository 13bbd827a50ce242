package scraper_test

import (
	"fmt"
	"strings"
)

const (
	commitPageHeaderConstant = `<!DOCTYPE html>
<html>
<head><title>log</title></head>
<body>
<div class="navbar"></div>
<div class="breadcrumbs"></div>
<div class="repository-header"></div>
<div class="log">
  <div class="pager"></div>
  <div class="listing">
    <table>
      <tbody>
`
	commitPageFooterConstant = `      </tbody>
    </table>
  </div>
</div>
</body>
</html>
`
	commitRowTemplateConstant = `        <tr class="commit">
          <td class="date"><span>%s</span></td>
          <td class="hidden-phone author"><span><a href="#">%s</a></span></td>
          <td class="message ellipsize"><table><tr><td><span><a href="#">%s</a></span></td><td class="refs"></td></tr></table></td>
        </tr>
`
	authorlessCommitRowTemplateConstant = `        <tr class="commit">
          <td class="date"><span>%s</span></td>
          <td class="hidden-phone author"></td>
          <td class="message ellipsize"><table><tr><td><span><a href="#">%s</a></span></td></tr></table></td>
        </tr>
`
)

type commitRowFixture struct {
	dateLabel string
	author    string
	message   string
}

func renderCommitPage(rows []commitRowFixture) string {
	var builder strings.Builder
	builder.WriteString(commitPageHeaderConstant)
	for _, row := range rows {
		if len(row.author) == 0 {
			builder.WriteString(fmt.Sprintf(authorlessCommitRowTemplateConstant, row.dateLabel, row.message))
			continue
		}
		builder.WriteString(fmt.Sprintf(commitRowTemplateConstant, row.dateLabel, row.author, row.message))
	}
	builder.WriteString(commitPageFooterConstant)
	return builder.String()
}
