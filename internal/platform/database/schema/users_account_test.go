// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/facetrace/internal/platform/database/schema"
)

func TestUserAccount_Projection(t *testing.T) {
	assert.Equal(t,
		"id, name, email, COALESCE(passwordhash, ''), createdat, updatedat",
		schema.UserAccount.Projection(),
	)
}
