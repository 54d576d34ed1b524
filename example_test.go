package naco_test

import (
	"fmt"

	naco "github.com/baditaflorin/go_naco"
)

func ExampleNormalizeNACO() {
	fmt.Println(naco.NormalizeNACO("O'Brien [Ed.]", nil))
	fmt.Println(naco.NormalizeNACO("Müller & Söhne", &naco.Options{Case: naco.CaseLower}))
	// Output:
	// OBRIEN ED
	// muller & sohne
}

func ExampleNormalizer() {
	n := naco.New(naco.WithCase("lower"))
	fmt.Println(n.Case(), n.Normalize("Brontë, Charlotte, 1816-1855"))

	n.SetCase("upper")
	fmt.Println(n.Case(), n.Normalize("Brontë, Charlotte, 1816-1855"))
	// Output:
	// lower bronte charlotte 1816 1855
	// upper BRONTE CHARLOTTE 1816 1855
}
