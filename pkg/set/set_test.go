package set_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gemsec/gem-audit/pkg/set"
)

func TestSet_Append(t *testing.T) {
	s := set.New[string]()
	s.Append("CVE-2019-5420", "CVE-2019-5418")
	s.Append("CVE-2019-5420")
	assert.Equal(t, 2, s.Size())
	assert.ElementsMatch(t, []string{"CVE-2019-5418", "CVE-2019-5420"}, s.Values())
}

func TestSet_Contains(t *testing.T) {
	s := set.New[string]()
	s.Append("GHSA-fp4w-jxhp-m23p")
	assert.True(t, s.Contains("GHSA-fp4w-jxhp-m23p"))
	assert.False(t, s.Contains("CVE-2019-5420"))
}

func TestOrdered_Values(t *testing.T) {
	s := set.NewOrdered[string]()
	s.Append("rails", "actionpack", "nokogiri")
	assert.Equal(t, []string{"actionpack", "nokogiri", "rails"}, s.Values())
}
