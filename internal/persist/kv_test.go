package persist

import (
	"bytes"
	"errors"
	"testing"

	"github.com/keith-kurak/i-didnt-park/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

// markerCipher is a stand-in for the sealbox keystore: it prefixes the
// payload so sealed bytes are visibly not JSON.
type markerCipher struct{}

var sealMarker = []byte("SEALED:")

func (markerCipher) Seal(plaintext []byte) ([]byte, error) {
	return append(append([]byte(nil), sealMarker...), plaintext...), nil
}

func (markerCipher) Open(ciphertext []byte) ([]byte, error) {
	if !bytes.HasPrefix(ciphertext, sealMarker) {
		return nil, errors.New("not a sealed payload")
	}

	return ciphertext[len(sealMarker):], nil
}

func TestKV_SealedRoundTrip(t *testing.T) {
	ad, err := OpenKV(t.TempDir(), markerCipher{})
	require.NoError(t, err)

	defer func() { _ = ad.Close() }()

	commutes, settings := sampleState()
	require.NoError(t, ad.SaveAll(commutes, settings))

	gotCommutes, gotSettings, err := ad.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, commutes, gotCommutes)
	assert.Equal(t, settings, gotSettings)
}

func TestKV_SealedPayloadIsNotPlaintext(t *testing.T) {
	dir := t.TempDir()

	ad, err := OpenKV(dir, markerCipher{})
	require.NoError(t, err)

	commutes, settings := sampleState()
	require.NoError(t, ad.SaveAll(commutes, settings))
	require.NoError(t, ad.Close())

	// read the raw payload straight out of the bucket
	raw := readRawPayload(t, dir)
	assert.True(t, bytes.HasPrefix(raw, sealMarker), "payload stored unsealed")
}

func TestKV_SealedWithoutCipherFails(t *testing.T) {
	dir := t.TempDir()

	ad, err := OpenKV(dir, markerCipher{})
	require.NoError(t, err)

	commutes, settings := sampleState()
	require.NoError(t, ad.SaveAll(commutes, settings))
	require.NoError(t, ad.Close())

	ad, err = OpenKV(dir, nil)
	require.NoError(t, err)

	defer func() { _ = ad.Close() }()

	_, _, err = ad.LoadAll()

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)
}

func TestKV_CorruptPayload(t *testing.T) {
	dir := t.TempDir()

	ad, err := OpenKV(dir, nil)
	require.NoError(t, err)

	commutes, settings := sampleState()
	require.NoError(t, ad.SaveAll(commutes, settings))
	require.NoError(t, ad.Close())

	writeRawPayload(t, dir, []byte("{not json"))

	ad, err = OpenKV(dir, nil)
	require.NoError(t, err)

	defer func() { _ = ad.Close() }()

	_, _, err = ad.LoadAll()

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
}

func TestKV_FailedSaveLeavesPriorPayload(t *testing.T) {
	dir := t.TempDir()

	ad, err := OpenKV(dir, markerCipher{})
	require.NoError(t, err)

	commutes, settings := sampleState()
	require.NoError(t, ad.SaveAll(commutes, settings))

	// a cipher failure aborts the save before the bolt transaction
	ad.cipher = failingCipher{}
	require.Error(t, ad.SaveAll(nil, model.DefaultSettings()))

	ad.cipher = markerCipher{}

	gotCommutes, gotSettings, err := ad.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, commutes, gotCommutes)
	assert.Equal(t, settings, gotSettings)
}

type failingCipher struct{}

func (failingCipher) Seal([]byte) ([]byte, error) { return nil, errors.New("seal failed") }
func (failingCipher) Open([]byte) ([]byte, error) { return nil, errors.New("open failed") }

func readRawPayload(t *testing.T, dir string) []byte {
	t.Helper()

	db := openRawBolt(t, dir)

	defer func() { _ = db.Close() }()

	var raw []byte

	err := db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(kvBucket)).Get([]byte(StoreName))
		raw = append([]byte(nil), v...)

		return nil
	})
	require.NoError(t, err)

	return raw
}

func writeRawPayload(t *testing.T, dir string, payload []byte) {
	t.Helper()

	db := openRawBolt(t, dir)

	defer func() { _ = db.Close() }()

	err := db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(kvBucket)).Put([]byte(StoreName), payload)
	})
	require.NoError(t, err)
}

func openRawBolt(t *testing.T, dir string) *bbolt.DB {
	t.Helper()

	db, err := bbolt.Open(dir+"/"+StoreName+".kv", 0600, nil)
	require.NoError(t, err)

	return db
}
