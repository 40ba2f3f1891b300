// Copyright (c) The Laye Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command gen-keywords (re)generates internal/gen/keywords.go from the
// keyword list below, stamping the repository's license header with
// bavard the same way the teacher's field-element generator does.
package main

import (
	"fmt"
	"sort"

	"github.com/consensys/bavard"
)

const copyrightHolder = "The Laye Authors"

// keywords is the single source of truth for which identifiers reclassify
// to a keyword token.Kind; the Kind names here must match the constants
// declared in pkg/token/kind.go.
var keywords = map[string]string{
	"void": "KwVoid", "noreturn": "KwNoreturn", "bool": "KwBool",
	"int": "KwInt", "uint": "KwUint", "float": "KwFloat", "mut": "KwMut",
	"struct": "KwStruct", "variant": "KwVariant", "import": "KwImport",
	"from": "KwFrom", "as": "KwAs", "export": "KwExport",
	"discardable": "KwDiscardable", "inline": "KwInline", "foreign": "KwForeign",
	"callconv": "KwCallconv", "varargs": "KwVarargs", "if": "KwIf",
	"else": "KwElse", "for": "KwFor", "while": "KwWhile", "break": "KwBreak",
	"continue": "KwContinue", "return": "KwReturn", "yield": "KwYield",
	"cast": "KwCast", "true": "KwTrue", "false": "KwFalse", "nil": "KwNil",
	"sizeof": "KwSizeof", "alignof": "KwAlignof", "not": "KwNot",
	"and": "KwAnd", "or": "KwOr", "xor": "KwXor", "assert": "KwAssert",
	"discard": "KwDiscard",
}

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2026, "gen-keywords")

	cfg, err := keywordsConfig()
	if err != nil {
		panic(fmt.Errorf("building keyword generator config: %w", err))
	}

	err = bgen.Generate(cfg, "gen", "templates",
		bavard.Entry{
			File:      "../../keywords.go",
			Templates: []string{"keywords.go.tmpl"},
		},
	)
	if err != nil {
		panic(fmt.Errorf("generating keywords.go: %w", err))
	}
}

func keywordsConfig() (keywordsTemplateData, error) {
	names := make([]string, 0, len(keywords))
	for k := range keywords {
		names = append(names, k)
	}

	sort.Strings(names)

	return keywordsTemplateData{Names: names, Kinds: keywords}, nil
}

type keywordsTemplateData struct {
	Names []string
	Kinds map[string]string
}
