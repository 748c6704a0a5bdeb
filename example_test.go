package notation_test

import (
	"fmt"

	"github.com/zephyrtronium/notation"
)

func ExampleConvert() {
	post, _ := notation.Convert("(3+4)*5", notation.Postfix)
	pre, _ := notation.Convert("(3+4)*5", notation.Prefix)
	fmt.Println(post)
	fmt.Println(pre)
	// Output:
	// 3 4 + 5 *
	// * + 3 4 5
}

func ExampleEvaluate() {
	r, err := notation.Evaluate("3 4 5 * +", notation.Postfix)
	if err != nil {
		panic(err)
	}
	for _, s := range r.Steps {
		fmt.Println(s)
	}
	fmt.Println(r.Value)
	// Output:
	// 4 * 5 = 20
	// 3 + 20 = 23
	// 23
}

func ExampleReduce() {
	r := notation.Reduce("a b c * +", notation.Postfix)
	for _, s := range r.Substitutions {
		fmt.Println(s)
	}
	fmt.Println(r.State, r.Residual)
	// Output:
	// bc*=Z -> aZ+
	// aZ+=Y -> Y
	// reduced Y
}

func ExampleValidate() {
	fmt.Println(notation.Validate("(3+4"))
	fmt.Println(notation.Validate("3++4"))
	// Output:
	// 1: open parenthesis with no close parenthesis '('
	// 3: consecutive operators '+'
}

func ExampleIsFatal() {
	_, err := notation.Evaluate("6 0 /", notation.Postfix)
	fmt.Println(err)
	fmt.Println(notation.IsFatal(err))
	// Output:
	// 5: division by zero: 6 / 0
	// true
}
