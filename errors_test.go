package gorecord_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/i18n"
)

func TestIssues_Error(t *testing.T) {
	var iss gorecord.Issues
	require.Equal(t, "", iss.Error())

	for i := 0; i < 5; i++ {
		iss = gorecord.AppendIssues(iss, gorecord.Issue{Path: "/a", Code: gorecord.CodeOutOfRange})
	}
	msg := iss.Error()
	require.Equal(t, 3, strings.Count(msg, "out_of_range at /a"))
	require.Contains(t, msg, "(total 5)")
}

func TestIssues_Unwrap(t *testing.T) {
	iss := gorecord.Issues{{Path: "/", Code: gorecord.CodeSerialization, Cause: io.ErrUnexpectedEOF}}
	require.True(t, errors.Is(iss, io.ErrUnexpectedEOF))
	require.True(t, gorecord.HasCode(iss, gorecord.CodeSerialization))
	require.False(t, gorecord.HasCode(iss, gorecord.CodeOutOfRange))
	require.False(t, gorecord.HasCode(io.EOF, gorecord.CodeSerialization))

	_, ok := gorecord.AsIssues(nil)
	require.False(t, ok)
}

func TestNewIssue_Message(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })

	iss := gorecord.NewIssue(gorecord.CodeOutOfRange, map[string]any{"min": 1, "max": 10})
	require.Equal(t, "/", iss[0].Path)
	require.Equal(t, "value out of range (max=10, min=1)", iss[0].Message)

	i18n.SetLanguage("ja")
	iss = gorecord.NewIssue(gorecord.CodeOutOfRange, nil)
	require.Equal(t, "値が範囲外です", iss[0].Message)
}

func TestPathRef(t *testing.T) {
	p := gorecord.RootPath()
	require.Equal(t, "/", p.Pointer())
	require.Equal(t, "/a~1b/2/c~0d", p.Field("a/b").Index(2).Field("c~d").Pointer())

	it := p.Field("x").Issue(gorecord.CodeUnknownField, map[string]any{"field": "x"})
	require.Equal(t, "/x", it.Path)
	require.Equal(t, gorecord.CodeUnknownField, it.Code)
}
