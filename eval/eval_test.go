// Copyright 2026 The JPP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eval

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/jsonpp-lang/jsonpp/errors"
	"github.com/jsonpp-lang/jsonpp/parser"
	"github.com/jsonpp-lang/jsonpp/serialize"
)

// memFS is an in-memory FileSystem for tests exercising include/import
// without touching the real disk. Paths are virtual, '/'-separated.
type memFS struct {
	files map[string]string
}

func (fs memFS) Resolve(dir, path string) (string, error) {
	if strings.HasPrefix(path, "/") {
		return cleanVirtual(path), nil
	}
	return cleanVirtual(dir + "/" + path), nil
}

func (fs memFS) ReadFile(path string) ([]byte, error) {
	data, ok := fs.files[cleanVirtual(path)]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return []byte(data), nil
}

// cleanVirtual resolves "." and ".." segments in a '/'-separated path
// without touching the OS filesystem.
func cleanVirtual(p string) string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/")
}

func evalSrc(t *testing.T, src string) (string, error) {
	t.Helper()
	return evalSrcFS(t, src, nil)
}

func evalSrcFS(t *testing.T, src string, fs FileSystem) (string, error) {
	t.Helper()
	mod, err := parser.ParseFile("test", "/", []byte(src))
	if err != nil {
		return "", err
	}
	if fs == nil {
		fs = memFS{files: map[string]string{}}
	}
	e := NewEvaluator(mod, fs, 0)
	v, err := e.EvaluateRoot()
	if err != nil {
		return "", err
	}
	out, err := serialize.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func wantKind(t *testing.T, err error, kind errors.Kind) {
	t.Helper()
	var jppErr errors.Error
	qt.Assert(t, qt.IsTrue(errors.As(err, &jppErr)))
	qt.Assert(t, qt.Equals(jppErr.Kind(), kind))
}

func TestEvaluateLiterals(t *testing.T) {
	out, err := evalSrc(t, `{"a": 1, "b": [1, 2, 3], "c": "hi"}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"a":1,"b":[1,2,3],"c":"hi"}`))
}

func TestUndefinedStrippedFromArrayAndObject(t *testing.T) {
	out, err := evalSrc(t, `{"a": [1, undefined, 2], "b": undefined, "c": 3}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"a":[1,2],"c":3}`))
}

func TestArithmeticBasics(t *testing.T) {
	cases := map[string]string{
		`(sum 1 2 3)`:   `6`,
		`(sub 10 3 2)`:  `5`,
		`(sub 5)`:       `-5`,
		`(mul 2 3 4)`:   `24`,
		`(div 10 2)`:    `5`,
		`(div 10 3)`:    `3.3333333333333335`,
		`(pow 2 10)`:    `1024`,
		`(pow 2 0.5)`:   `1.4142135623730951`,
		`(mod 10 3)`:    `1`,
		`(max 1 5 3)`:   `5`,
		`(min 1 5 3)`:   `1`,
		`(max 1 5.5 3)`: `5.5`,
	}
	for src, want := range cases {
		out, err := evalSrc(t, src)
		qt.Assert(t, qt.IsNil(err), qt.Commentf("src=%s", src))
		qt.Assert(t, qt.Equals(out, want), qt.Commentf("src=%s", src))
	}
}

func TestDivisionByZeroIsMathError(t *testing.T) {
	_, err := evalSrc(t, `(div 1 0)`)
	wantKind(t, err, errors.Math)
}

func TestIntegerOverflowIsMathError(t *testing.T) {
	_, err := evalSrc(t, `(sum 9223372036854775807 1)`)
	wantKind(t, err, errors.Math)
}

func TestLogDomainErrors(t *testing.T) {
	_, err := evalSrc(t, `(log -1 2)`)
	wantKind(t, err, errors.Math)
	_, err = evalSrc(t, `(log 1 1)`)
	wantKind(t, err, errors.Math)
}

func TestConvertRoundsHalfAwayFromZero(t *testing.T) {
	out, err := evalSrc(t, `[(int 0.5), (int -0.5), (int 1.5), (int -1.5)]`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `[1,-1,2,-2]`))
}

func TestIntFromStringAndFloatFromString(t *testing.T) {
	out, err := evalSrc(t, `[(int "3"), (float "2.5")]`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `[3,2.5]`))
}

func TestLenOverStringArrayObject(t *testing.T) {
	out, err := evalSrc(t, `[(len "héllo"), (len [1,2,3]), (len {"a":1,"b":2})]`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `[5,3,2]`))
}

func TestMergeStringsArraysObjects(t *testing.T) {
	out, err := evalSrc(t, `[
		(merge "a" "b" "c"),
		(merge [1,2] [3,4]),
		(merge {"a":1,"b":2} {"b":3,"c":4})
	]`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `["abc",[1,2,3,4],{"a":1,"b":3,"c":4}]`))
}

func TestMergeMixedKindsIsTypeError(t *testing.T) {
	_, err := evalSrc(t, `(merge "a" [1])`)
	wantKind(t, err, errors.Type)
}

func TestIfNonStrictOnUntakenBranch(t *testing.T) {
	out, err := evalSrc(t, `(if true 1 (div 1 0))`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `1`))
}

func TestEqCrossNumericAndStructural(t *testing.T) {
	out, err := evalSrc(t, `[(eq 1 1.0), (eq [1,2] [1,2]), (eq {"a":1} {"a":1}), (eq "a" "b")]`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `[true,true,true,false]`))
}

func TestComparisons(t *testing.T) {
	out, err := evalSrc(t, `[(lt 1 2), (gt 2 1), (lte 1 1), (gte 2 1), (lt "a" "b")]`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `[true,true,true,true,true]`))
}

func TestCompareTypeMismatchIsTypeError(t *testing.T) {
	_, err := evalSrc(t, `(lt 1 "a")`)
	wantKind(t, err, errors.Type)
}

func TestRangeProducesHalfOpenArray(t *testing.T) {
	out, err := evalSrc(t, `(range 0 5)`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `[0,1,2,3,4]`))
}

func TestDefAndInvoke(t *testing.T) {
	out, err := evalSrc(t, `{"double": (def x (mul x 2)), "r": ((ref "double") 21)}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"r":42}`))
}

func TestMapFilterReduceScenarioS3(t *testing.T) {
	out, err := evalSrc(t, `{"xs": (range 1 5), "doubled": (map (def x (mul 2 x)) (ref "xs"))}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"xs":[1,2,3,4],"doubled":[2,4,6,8]}`))
}

func TestMapFilterReduce(t *testing.T) {
	out, err := evalSrc(t, `{
		"f": (def x (mul x x)),
		"squares": (map (ref "f") [1,2,3,4]),
		"evens": (filter (def x (eq (mod x 2) 0)) [1,2,3,4,5,6]),
		"total": (reduce (def a b (sum a b)) [1,2,3,4])
	}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"squares":[1,4,9,16],"evens":[2,4,6],"total":10}`))
}

func TestReduceEmptyWithoutInitIsError(t *testing.T) {
	_, err := evalSrc(t, `(reduce (def a b (sum a b)) [])`)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestReduceEmptyWithInit(t *testing.T) {
	out, err := evalSrc(t, `(reduce (def a b (sum a b)) [] 9)`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `9`))
}

func TestMapOverBuiltinDirectly(t *testing.T) {
	out, err := evalSrc(t, `(map sub [1,2,3])`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `[-1,-2,-3]`))
}

func TestRefKeyIndexWildcard(t *testing.T) {
	out, err := evalSrc(t, `{
		"items": [{"n": 1}, {"n": 2}, {"n": 3}],
		"first": (ref "items[0].n"),
		"names": (ref "items[_].n")
	}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"items":[{"n":1},{"n":2},{"n":3}],"first":1,"names":[1,2,3]}`))
}

func TestRefRootAnchored(t *testing.T) {
	out, err := evalSrc(t, `{"a": {"b": 42}, "c": (ref "a.b")}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"a":{"b":42},"c":42}`))
}

func TestRefArgStepAddressesCallArgsUnforced(t *testing.T) {
	out, err := evalSrc(t, `{"pick": (ref ".(3)" (div 1 0) 99)}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"pick":99}`))
}

func TestRefScenarioS6(t *testing.T) {
	out, err := evalSrc(t, `{"self": (ref ".(2).name" {"name":"foo"})}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"self":"foo"}`))
}

func TestRefOutOfRangeIsRefError(t *testing.T) {
	_, err := evalSrc(t, `{"a": [1,2], "b": (ref "a[5]")}`)
	wantKind(t, err, errors.Ref)
}

func TestCycleDetectionGlobal(t *testing.T) {
	_, err := evalSrc(t, `{"a": (ref "b"), "b": (ref "a")}`)
	wantKind(t, err, errors.Cycle)
	// The cycle's full chain must name both Nodes, not just whichever one
	// was re-entered: "$.a" -> "$.b" -> "$.a", never "$.a" alone.
	qt.Assert(t, qt.Matches(err.Error(), `.*\$\.a.*\$\.b.*\$\.a.*`))
}

func TestNoFalseCycleAcrossSiblingRefs(t *testing.T) {
	out, err := evalSrc(t, `{"a": 1, "b": (ref "a"), "c": (ref "b")}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"a":1,"b":1,"c":1}`))
}

func TestClosureCapturesDefiningScope(t *testing.T) {
	out, err := evalSrc(t, `{
		"make": (def n (def x (sum x n))),
		"add5": ((ref "make") 5),
		"r": ((ref "add5") 10)
	}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"r":15}`))
}

func TestSameDefBodyReevaluatedPerInvocationNotMemoized(t *testing.T) {
	out, err := evalSrc(t, `{
		"square": (def x (mul x x)),
		"r": (map (ref "square") [1,2,3])
	}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"r":[1,4,9]}`))
}

func TestUnboundedSelfRecursionHitsDepthLimit(t *testing.T) {
	_, err := evalSrc(t, `{"loop": (def x ((ref "loop") x)), "r": ((ref "loop") 1)}`)
	qt.Assert(t, qt.IsNotNil(err))
	wantKind(t, err, errors.Stack)
}

func TestIncludeReadsRawFileContents(t *testing.T) {
	fs := memFS{files: map[string]string{"/greeting.txt": "hello world"}}
	out, err := evalSrcFS(t, `{"msg": (include "greeting.txt")}`, fs)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"msg":"hello world"}`))
}

func TestIncludeMissingFileIsIOError(t *testing.T) {
	_, err := evalSrcFS(t, `(include "nope.txt")`, memFS{files: map[string]string{}})
	wantKind(t, err, errors.IO)
}

func TestImportSplicesParsedSubtree(t *testing.T) {
	fs := memFS{files: map[string]string{"/sub.jpp": `{"value": 42}`}}
	out, err := evalSrcFS(t, `{"sub": (import "sub.jpp")}`, fs)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"sub":{"value":42}}`))
}

func TestImportRelativeRefResolvesWithinImportedFile(t *testing.T) {
	// A root-anchored (no leading dot) ref always targets the primary
	// document's root, even when evaluated from within an imported
	// subtree, so a reference to a sibling field local to the
	// imported file must climb relatively instead.
	fs := memFS{files: map[string]string{
		"/sub.jpp": `{"a": 1, "b": (ref "..a")}`,
	}}
	out, err := evalSrcFS(t, `{"sub": (import "sub.jpp")}`, fs)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"sub":{"a":1,"b":1}}`))
}

func TestImportRootAnchoredRefResolvesAgainstPrimaryRoot(t *testing.T) {
	fs := memFS{files: map[string]string{
		"/sub.jpp": `(ref "outer")`,
	}}
	out, err := evalSrcFS(t, `{"outer": 7, "sub": (import "sub.jpp")}`, fs)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"outer":7,"sub":7}`))
}

func TestImportCycleIsDetected(t *testing.T) {
	fs := memFS{files: map[string]string{
		"/a.jpp": `(import "b.jpp")`,
		"/b.jpp": `(import "a.jpp")`,
	}}
	_, err := evalSrcFS(t, `(import "a.jpp")`, fs)
	wantKind(t, err, errors.Cycle)
}

func TestSameFileImportedTwiceIsNotShared(t *testing.T) {
	fs := memFS{files: map[string]string{
		"/counter.jpp": `1`,
	}}
	out, err := evalSrcFS(t, `[(import "counter.jpp"), (import "counter.jpp")]`, fs)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `[1,1]`))
}

func TestUndefinedFieldsNeverLeakDefinitionsIntoOutput(t *testing.T) {
	out, err := evalSrc(t, `{"f": (def x x), "y": 1}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"y":1}`))
}

func TestUndefinedNameIsNameError(t *testing.T) {
	_, err := evalSrc(t, `(sum nope 1)`)
	wantKind(t, err, errors.Name)
}

func TestCallHeadNotCallableIsTypeError(t *testing.T) {
	_, err := evalSrc(t, `(1 2 3)`)
	wantKind(t, err, errors.Type)
}

func TestStackDepthLimit(t *testing.T) {
	mod, err := parser.ParseFile("test", "/", []byte(`(sum 1 1)`))
	qt.Assert(t, qt.IsNil(err))
	e := NewEvaluator(mod, memFS{files: map[string]string{}}, 1)
	_, err = e.EvaluateRoot()
	qt.Assert(t, qt.IsNotNil(err))
	wantKind(t, err, errors.Stack)
}
