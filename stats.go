// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symlogic

import "fmt"

// PrintStats outputs a textual representation of the BDD's node table and
// cache statistics on the standard output.
func (b Set) PrintStats() {
	fmt.Println("==============")
	fmt.Println(b.Stats())
	fmt.Println("==============")
}
