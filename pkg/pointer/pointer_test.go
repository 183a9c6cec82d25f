// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/personapi/pkg/pointer"
)

func TestTo_Copies(t *testing.T) {
	name := "John Smith"
	p := pointer.To(name)
	name = "changed"
	assert.Equal(t, "John Smith", *p)
}

func TestVal(t *testing.T) {
	assert.Equal(t, int64(7), pointer.Val(pointer.To(int64(7))))
	assert.Equal(t, "", pointer.Val[string](nil))
}
