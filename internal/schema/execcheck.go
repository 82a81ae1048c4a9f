// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package schema

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// CheckExecuteCode parses a node's executeCode as JavaScript and returns
// an error describing the first syntax problem, if any. A structural
// check alone accepts a node whose code can never run; this catches that
// before the definition reaches the editor.
func CheckExecuteCode(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}

	root, err := sitter.ParseCtx(ctx, []byte(code), javascript.GetLanguage())
	if err != nil {
		return fmt.Errorf("parsing execute code: %w", err)
	}

	if bad := firstErrorNode(root); bad != nil {
		point := bad.StartPoint()
		return fmt.Errorf("execute code has a syntax error at line %d, column %d",
			point.Row+1, point.Column+1)
	}

	return nil
}

// firstErrorNode walks the syntax tree depth-first and returns the first
// error or missing node, or nil when the tree is clean.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstErrorNode(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
