package textfmt_test

import (
	"fmt"

	"github.com/rccgrog/rogsite/pkg/textfmt"
)

func ExampleFormatPlain() {
	fmt.Println(textfmt.FormatPlain(`Sunday service\n\nAll are welcome/nBring a friend`))
	// Output:
	// Sunday service
	// All are welcome
	// Bring a friend
}

func ExampleFormatMarkup() {
	fmt.Println(textfmt.FormatMarkup(`Sunday service\n\nAll are welcome\nBring a friend`))
	// Output: Sunday service<br><br>All are welcome<br>Bring a friend
}
