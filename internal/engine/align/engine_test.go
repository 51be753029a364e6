package align

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// levenshtein is a full-matrix reference implementation used as an oracle.
func levenshtein(a, b []rune) int {
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
		dp[i][0] = i
	}
	for j := range dp[0] {
		dp[0][j] = j
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			sub := 1
			if a[i-1] == b[j-1] {
				sub = 0
			}
			dp[i][j] = min(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+sub)
		}
	}
	return dp[len(a)][len(b)]
}

// engineState captures everything Undo must restore.
type engineState struct {
	typed       string
	row         []int
	checkpoints int
}

func stateOf(e *Engine) engineState {
	return engineState{
		typed:       string(e.typed),
		row:         slices.Clone(e.row),
		checkpoints: len(e.checkpoints),
	}
}

func randomText(rng *rand.Rand, alphabet []rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(out)
}

// TestNew_InitialRow verifies the row for an empty typed sequence.
func TestNew_InitialRow(t *testing.T) {
	e := New("héllo", EditDistance)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, e.row, "initial row is 0..n over runes")
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, EditDistance, e.Mode())
	assert.Equal(t, "héllo", e.Reference())
}

// TestAppend_RowInvariants checks len(row) and row[0] after every append.
func TestAppend_RowInvariants(t *testing.T) {
	for _, mode := range []Mode{EditDistance, TrackingAlignment} {
		e := New("the quick brown fox", mode)
		for i, r := range "teh qiuck brwn fox jumps" {
			e.Append(r)
			require.Len(t, e.row, len(e.reference)+1, "%s: row length", mode)
			require.Equal(t, i+1, e.row[0], "%s: row[0] equals typed length", mode)
		}
	}
}

// TestAppend_Checkpoints verifies snapshots land exactly on multiples of the interval.
func TestAppend_Checkpoints(t *testing.T) {
	e := New("Hello world this is a long tex", EditDistance)
	e.AppendString("Hello world this is a long tex")

	require.Len(t, e.checkpoints, 30)
	for i, cp := range e.checkpoints {
		if (i+1)%CheckpointInterval == 0 {
			assert.NotNil(t, cp, "slot %d should hold a snapshot", i)
		} else {
			assert.Nil(t, cp, "slot %d should be empty", i)
		}
	}
	assert.Equal(t, e.row, e.checkpoints[29], "last snapshot equals current row")
}

// TestAppend_SnapshotIsCopy ensures later appends do not mutate a stored snapshot.
func TestAppend_SnapshotIsCopy(t *testing.T) {
	e := New("abcdefghijklmnop", EditDistance)
	e.AppendString("abcdefghij")
	saved := slices.Clone(e.checkpoints[9])

	e.AppendString("xyz")
	assert.Equal(t, saved, e.checkpoints[9])
}

// TestDistance_MatchesOracle compares every prefix against a full-matrix Levenshtein.
func TestDistance_MatchesOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("abcde ")

	for trial := 0; trial < 25; trial++ {
		ref := randomText(rng, alphabet, rng.Intn(20))
		typed := []rune(randomText(rng, alphabet, rng.Intn(30)))

		e := New(ref, EditDistance)
		for k, r := range typed {
			e.Append(r)
			got, err := e.Distance()
			require.NoError(t, err)
			want := levenshtein(typed[:k+1], []rune(ref))
			require.Equal(t, want, got, "ref=%q typed=%q", ref, string(typed[:k+1]))

			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, max(len([]rune(ref)), k+1))
		}
	}
}

// TestDistance_ZeroIffEqual checks the zero-distance property.
func TestDistance_ZeroIffEqual(t *testing.T) {
	e := New("hi", EditDistance)
	e.AppendString("h")
	d, _ := e.Distance()
	assert.NotZero(t, d)

	e.Append('i')
	d, _ = e.Distance()
	assert.Zero(t, d)

	e.Append('i')
	d, _ = e.Distance()
	assert.Equal(t, 1, d)
}

// TestDistance_EmptyReference verifies the degenerate reference.
func TestDistance_EmptyReference(t *testing.T) {
	e := New("", EditDistance)
	e.AppendString("abc")
	d, err := e.Distance()
	require.NoError(t, err)
	assert.Equal(t, 3, d, "distance equals typed length")

	require.NoError(t, e.Undo())
	d, _ = e.Distance()
	assert.Equal(t, 2, d)
}

// TestUndo_InverseOfAppend checks the inverse law for every prefix in both modes.
func TestUndo_InverseOfAppend(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("helo wrdtisa")
	ref := "hello world this is a long text to check"

	for _, mode := range []Mode{EditDistance, TrackingAlignment} {
		e := New(ref, mode)
		input := randomText(rng, alphabet, 47)

		var history []engineState
		for _, r := range input {
			history = append(history, stateOf(e))
			e.Append(r)
		}

		for i := len(history) - 1; i >= 0; i-- {
			require.NoError(t, e.Undo())
			got := stateOf(e)
			assert.Equal(t, history[i].typed, got.typed, "%s: typed after undo #%d", mode, i)
			assert.Equal(t, history[i].row, got.row, "%s: row after undo #%d", mode, i)
			assert.Equal(t, history[i].checkpoints, got.checkpoints, "%s: slots after undo #%d", mode, i)
		}
	}
}

// TestUndo_InterleavedWithAppend replays a random edit session against a
// fresh engine fed the surviving text.
func TestUndo_InterleavedWithAppend(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ref := "cutie mark crusaders get out of my way"

	e := New(ref, EditDistance)
	var typed []rune
	for step := 0; step < 400; step++ {
		if len(typed) > 0 && rng.Intn(3) == 0 {
			require.NoError(t, e.Undo())
			typed = typed[:len(typed)-1]
		} else {
			r := rune("abcdefghijklmnopqrstuvwxyz "[rng.Intn(27)])
			e.Append(r)
			typed = append(typed, r)
		}

		fresh := New(ref, EditDistance)
		fresh.AppendString(string(typed))
		require.Equal(t, fresh.row, e.row, "step %d", step)
		require.Equal(t, string(typed), e.Typed())
	}
}

// TestUndo_KeepsSnapshotInvariant verifies slots still follow the interval
// rule after undoing across a checkpoint.
func TestUndo_KeepsSnapshotInvariant(t *testing.T) {
	alphabet := "abcdefghijklmnopqrstuvwxyz"
	e := New(alphabet, EditDistance)
	e.AppendString(alphabet)
	for i := 0; i < 16; i++ {
		require.NoError(t, e.Undo())
	}

	require.Equal(t, 10, e.Len())
	for i, cp := range e.checkpoints {
		assert.Equal(t, (i+1)%CheckpointInterval == 0, cp != nil, "slot %d", i)
	}
	d, _ := e.Distance()
	assert.Equal(t, 16, d)
}

// TestUndo_Empty verifies the empty-engine contract.
func TestUndo_Empty(t *testing.T) {
	e := New("abc", TrackingAlignment)
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)

	e.Append('a')
	require.NoError(t, e.Undo())
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
	assert.Equal(t, []int{0, 1, 2, 3}, e.row)
}

// TestModeMismatch verifies each query is rejected on the other mode.
func TestModeMismatch(t *testing.T) {
	_, err := New("abc", TrackingAlignment).Distance()
	assert.ErrorIs(t, err, ErrModeMismatch)

	_, err = New("abc", EditDistance).Position(1)
	assert.ErrorIs(t, err, ErrModeMismatch)
}

// TestPosition_ShortInput returns the typed length until tolerance is exceeded.
func TestPosition_ShortInput(t *testing.T) {
	e := New("hello world", TrackingAlignment)
	e.AppendString("xyz")
	for _, tol := range []int{3, 4, 10} {
		pos, err := e.Position(tol)
		require.NoError(t, err)
		assert.Equal(t, 3, pos, "tolerance %d", tol)
	}
}

// TestPosition_EmptyReference falls through the scan with the default boundary.
func TestPosition_EmptyReference(t *testing.T) {
	e := New("", TrackingAlignment)
	e.AppendString("abcdefg")
	pos, err := e.Position(5)
	require.NoError(t, err)
	assert.Equal(t, 6, pos)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "distance", EditDistance.String())
	assert.Equal(t, "tracking", TrackingAlignment.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
