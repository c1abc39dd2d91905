package category

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	require.Equal(t, "hair", Resolve("haircare"))
	require.Equal(t, "skincare_device", Resolve("beauty_device"))
	require.Equal(t, "supplements", Resolve("supplements"))
}

func TestAliasesReturnsCopy(t *testing.T) {
	a := Aliases("skincare")
	require.Contains(t, a, "bestsellers")
	a[0] = "mutated"
	require.Equal(t, "skincare", Aliases("skincare")[0])
	require.Equal(t, []string{"supplements"}, Aliases("supplements"))
}

func TestMatches(t *testing.T) {
	al := Aliases("haircare")
	require.True(t, Matches("hair", al))
	require.True(t, Matches("haircare:shampoo", al))
	require.False(t, Matches("hairdryer", al))
	require.False(t, Matches("skincare", al))
}

func TestLikePatterns(t *testing.T) {
	require.Equal(t, []string{`skincare\_device:%`}, LikePatterns([]string{"skincare_device"}))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "skincare", Normalize(""))
	require.Equal(t, "makeup", Normalize("makeup"))
	require.Equal(t, "haircare", Normalize("Haircare"))
	require.Equal(t, "skincare_device", Normalize("Skincare Device"))
	require.Equal(t, "hair", Normalize("hair"))
}

func TestRegionPlatforms(t *testing.T) {
	require.Equal(t, []string{"amazon_us", "ulta", "tiktokshop_us"}, RegionPlatforms("US"))
	require.Equal(t, []string{"oliveyoung"}, RegionPlatforms("KR"))
	require.Nil(t, RegionPlatforms("JP"))
}
