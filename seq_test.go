package dwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeqCursor(t *testing.T) {
	t.Run("consuming every element then finish succeeds", func(t *testing.T) {
		var got []int32
		_, err := Decode(Arr(Int32(1), Int32(2), Int32(3)), func(d Decoder) (struct{}, error) {
			err := d.Decode(&Visitor{
				Want: "an int array",
				Seq: func(s *SeqCursor) error {
					require.Equal(t, 3, s.Len())
					for {
						n, ok, err := NextElement(s, DecodeInt32)
						if err != nil {
							return err
						}
						if !ok {
							break
						}
						got = append(got, n)
					}
					require.Equal(t, 0, s.Len())
					return s.Finish()
				},
			})
			return struct{}{}, err
		})
		require.NoError(t, err)
		assert.Equal(t, []int32{1, 2, 3}, got)
	})

	t.Run("finishing early reports the remaining count", func(t *testing.T) {
		_, err := Decode(Arr(Int32(1), Int32(2), Int32(3)), func(d Decoder) (struct{}, error) {
			err := d.Decode(&Visitor{
				Want: "an int array",
				Seq: func(s *SeqCursor) error {
					if _, _, err := NextElement(s, DecodeInt32); err != nil {
						return err
					}
					return s.Finish()
				},
			})
			return struct{}{}, err
		})
		var mismatch *LengthMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 2, mismatch.Remaining)
	})

	t.Run("element decode errors propagate unchanged", func(t *testing.T) {
		_, err := Decode(Arr(Int32(1), Str("two")), SliceOf(DecodeInt32))
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
	})

	t.Run("empty array decodes to an empty slice", func(t *testing.T) {
		got, err := Decode(Arr(), SliceOf(DecodeInt32))
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("next on an exhausted cursor reports false", func(t *testing.T) {
		s := newSeqCursor(A{}, DefaultMaxDepth)
		_, ok := s.Next()
		assert.False(t, ok)
	})
}

func TestSeqCursorAsDecoder(t *testing.T) {
	t.Run("non-empty cursor answers the sequence shape", func(t *testing.T) {
		s := newSeqCursor(A{Int32(4)}, DefaultMaxDepth)
		got, err := SliceOf(DecodeInt32)(s)
		require.NoError(t, err)
		assert.Equal(t, []int32{4}, got)
	})

	t.Run("empty cursor answers the unit shape", func(t *testing.T) {
		s := newSeqCursor(A{}, DefaultMaxDepth)
		_, err := DecodeUnit(s)
		require.NoError(t, err)
	})

	t.Run("empty cursor rejects a sequence-only target", func(t *testing.T) {
		s := newSeqCursor(A{}, DefaultMaxDepth)
		err := s.Decode(&Visitor{
			Want: "a pair",
			Seq:  func(*SeqCursor) error { return nil },
		})
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Contains(t, syntaxErr.Error(), "null")
	})
}
