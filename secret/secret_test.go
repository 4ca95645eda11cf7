// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secret_test

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pngsecret/chunkrecord"
	"github.com/bitmark-inc/pngsecret/chunktype"
	"github.com/bitmark-inc/pngsecret/container"
	"github.com/bitmark-inc/pngsecret/fault"
	"github.com/bitmark-inc/pngsecret/secret"
	"github.com/bitmark-inc/pngsecret/secret/mocks"
	"github.com/bitmark-inc/pngsecret/seal"
	"github.com/bitmark-inc/pngsecret/stash"
)

const (
	logCategory = "testing"
	inputFile   = "input.png"
	outputFile  = "output.png"
	secretType  = "ruSt"
)

var testingDirName string

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "secret-test")
	if nil != err {
		fmt.Fprintf(os.Stderr, "temp dir error: %s\n", err)
		os.Exit(1)
	}
	testingDirName = dir

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      fmt.Sprintf("%s.log", logCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func record(t *testing.T, chunkType string, data string) *chunkrecord.Record {
	code, err := chunktype.FromString(chunkType)
	if nil != err {
		t.Fatalf("chunk type: %q  error: %s", chunkType, err)
	}
	return chunkrecord.New(code, []byte(data))
}

func imageFile(t *testing.T, records ...*chunkrecord.Record) []byte {
	return container.FromRecords(records).Pack()
}

func baseImage(t *testing.T) []byte {
	return imageFile(t,
		record(t, "IHDR", "header"),
		record(t, "IDAT", "pixels"),
		record(t, "IEND", ""),
	)
}

// capture whatever is written
func captureWrite(fs *mocks.MockFilesystem, name string, written *[]byte) *gomock.Call {
	return fs.EXPECT().WriteFile(name, gomock.Any()).DoAndReturn(func(_ string, data []byte) error {
		*written = data
		return nil
	})
}

func newSecret(fs secret.Filesystem, stasher secret.Stasher, defaultType string) *secret.Secret {
	return secret.New(fs, stasher, defaultType, logger.New(logCategory))
}

func TestEmbedThenExtract(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(baseImage(t), nil).Times(1)

	var written []byte
	captureWrite(fs, outputFile, &written).Times(1)

	s := newSecret(fs, nil, "")
	r, err := s.Embed(secret.EmbedArguments{
		Input:     inputFile,
		Output:    outputFile,
		ChunkType: secretType,
		Message:   "this is a secret message",
	})
	assert.Nil(t, err, "embed error")
	assert.Equal(t, uint32(24), r.Length(), "wrong length")

	c, err := container.Packed(written).Unpack()
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, 4, c.Len(), "wrong chunk count")
	assert.Equal(t, secretType, c.Records()[3].Type().String(), "secret chunk is not last")

	fs.EXPECT().ReadFile(outputFile).Return(written, nil).Times(1)

	message, err := s.Extract(outputFile, secretType, "")
	assert.Nil(t, err, "extract error")
	assert.Equal(t, "this is a secret message", message, "wrong message")
}

func TestEmbedSealedThenExtract(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(baseImage(t), nil).Times(1)

	var written []byte
	captureWrite(fs, outputFile, &written).Times(1)

	s := newSecret(fs, nil, secretType)
	r, err := s.Embed(secret.EmbedArguments{
		Input:    inputFile,
		Output:   outputFile,
		Message:  "sealed message",
		Password: "pass phrase",
	})
	assert.Nil(t, err, "embed error")
	assert.True(t, seal.IsSealed(r.Data()), "data not sealed")

	fs.EXPECT().ReadFile(outputFile).Return(written, nil).AnyTimes()

	_, err = s.Extract(outputFile, "", "")
	assert.Equal(t, fault.ErrSealed, err, "extract without password")

	_, err = s.Extract(outputFile, "", "wrong phrase")
	assert.Equal(t, fault.ErrWrongPassword, err, "extract with wrong password")

	message, err := s.Extract(outputFile, "", "pass phrase")
	assert.Nil(t, err, "extract error")
	assert.Equal(t, "sealed message", message, "wrong message")
}

func TestExtractPasswordOnPlainChunk(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(imageFile(t, record(t, secretType, "plain")), nil).Times(1)

	s := newSecret(fs, nil, "")
	_, err := s.Extract(inputFile, secretType, "pass phrase")
	assert.Equal(t, fault.ErrNotSealed, err, "wrong error")
}

func TestExtractMissingChunk(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(baseImage(t), nil).Times(1)

	s := newSecret(fs, nil, "")
	_, err := s.Extract(inputFile, secretType, "")
	assert.True(t, fault.IsErrNotFound(err), "wrong error: %v", err)
}

func TestExtractInvalidText(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(imageFile(t, record(t, secretType, "\xff\xfe")), nil).Times(1)

	s := newSecret(fs, nil, "")
	_, err := s.Extract(inputFile, secretType, "")
	assert.Equal(t, fault.ErrInvalidEncoding, err, "wrong error")
}

func TestEmbedErrors(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	s := newSecret(fs, nil, "")

	_, err := s.Embed(secret.EmbedArguments{Input: inputFile, ChunkType: secretType})
	assert.Equal(t, fault.ErrRequiredFile, err, "missing output")

	_, err = s.Embed(secret.EmbedArguments{Input: inputFile, Output: outputFile})
	assert.Equal(t, fault.ErrRequiredChunkType, err, "missing chunk type")

	_, err = s.Embed(secret.EmbedArguments{Input: inputFile, Output: outputFile, ChunkType: "ru5t"})
	assert.Equal(t, fault.ErrNotAllLetters, err, "non-letter chunk type")

	_, err = s.Embed(secret.EmbedArguments{Input: inputFile, Output: outputFile, ChunkType: "rust!"})
	assert.Equal(t, fault.ErrWrongTypeLength, err, "long chunk type")

	// lower case reserved letter
	_, err = s.Embed(secret.EmbedArguments{Input: inputFile, Output: outputFile, ChunkType: "rust"})
	assert.True(t, fault.IsErrInvalid(err), "reserved bit: %v", err)

	// critical and safe to copy
	_, err = s.Embed(secret.EmbedArguments{Input: inputFile, Output: outputFile, ChunkType: "RuSt"})
	assert.True(t, fault.IsErrInvalid(err), "critical safe to copy: %v", err)
}

func TestLoadCorrupt(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	packed := baseImage(t)
	packed[len(packed)-1] ^= 0x01

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(packed, nil).Times(1)
	fs.EXPECT().ReadFile("not-an-image").Return([]byte("GIF89a and more"), nil).Times(1)

	s := newSecret(fs, nil, "")

	_, err := s.Load(inputFile)
	assert.True(t, fault.IsErrRecord(err), "checksum: %v", err)

	_, err = s.List("not-an-image")
	assert.True(t, fault.IsErrInvalid(err), "signature: %v", err)
}

func TestStripAndStash(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	hidden := record(t, secretType, "hidden")

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(imageFile(t,
		record(t, "IHDR", "header"),
		hidden,
		record(t, "IEND", ""),
	), nil).Times(1)

	stasher := mocks.NewMockStasher(ctl)

	var written []byte
	gomock.InOrder(
		captureWrite(fs, outputFile, &written).Times(1),
		stasher.EXPECT().Put(gomock.Any()).DoAndReturn(func(r *chunkrecord.Record) (uint64, error) {
			assert.Equal(t, hidden.Pack(), r.Pack(), "wrong record stashed")
			return 1, nil
		}).Times(1),
	)

	s := newSecret(fs, stasher, "")
	r, err := s.Strip(inputFile, secretType, outputFile, true)
	assert.Nil(t, err, "strip error")
	assert.Equal(t, "hidden", string(r.Data()), "wrong record removed")

	c, err := container.Packed(written).Unpack()
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, 2, c.Len(), "wrong chunk count")
	_, found := c.Find(secretType)
	assert.False(t, found, "chunk still present")
}

func TestStripFailedWriteLeavesStashEmpty(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(imageFile(t, record(t, secretType, "hidden")), nil).Times(1)
	fs.EXPECT().WriteFile(outputFile, gomock.Any()).Return(os.ErrPermission).Times(1)

	st, err := stash.Open(filepath.Join(testingDirName, t.Name()+".leveldb"), logger.New(logCategory))
	if nil != err {
		t.Fatalf("stash open error: %s", err)
	}
	defer st.Close()

	s := newSecret(fs, st, "")
	_, err = s.Strip(inputFile, secretType, outputFile, true)
	assert.Equal(t, os.ErrPermission, err, "wrong error")

	entries, err := st.List()
	assert.Nil(t, err, "list error")
	assert.Equal(t, 0, len(entries), "chunk stashed although nothing was written")
}

func TestStripStashFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(imageFile(t, record(t, secretType, "hidden")), nil).Times(1)

	var written []byte
	captureWrite(fs, outputFile, &written).Times(1)

	stasher := mocks.NewMockStasher(ctl)
	stasher.EXPECT().Put(gomock.Any()).Return(uint64(0), fault.ErrNotInitialised).Times(1)

	s := newSecret(fs, stasher, "")
	r, err := s.Strip(inputFile, secretType, outputFile, true)
	assert.True(t, fault.IsErrProcess(err), "wrong error class: %v", err)
	assert.True(t, errors.Is(err, fault.ErrNotStashed), "wrong error: %v", err)
	assert.Equal(t, "hidden", string(r.Data()), "removed record not returned")
	assert.Equal(t, container.Signature[:], written, "output not written")
}

func TestStripWithoutStash(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(imageFile(t, record(t, secretType, "hidden")), nil).Times(1)

	var written []byte
	captureWrite(fs, outputFile, &written).Times(1)

	// Put must not be called
	stasher := mocks.NewMockStasher(ctl)

	s := newSecret(fs, stasher, "")
	_, err := s.Strip(inputFile, secretType, outputFile, false)
	assert.Nil(t, err, "strip error")
	assert.Equal(t, container.Signature[:], written, "only the signature should remain")
}

func TestStripMissingChunk(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(baseImage(t), nil).Times(1)

	s := newSecret(fs, mocks.NewMockStasher(ctl), "")
	_, err := s.Strip(inputFile, secretType, outputFile, true)
	assert.True(t, fault.IsErrNotFound(err), "wrong error: %v", err)
}

func TestRestore(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	hidden := record(t, secretType, "hidden")

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(baseImage(t), nil).Times(1)

	stasher := mocks.NewMockStasher(ctl)

	var written []byte
	gomock.InOrder(
		stasher.EXPECT().Latest(secretType).Return(hidden, nil).Times(1),
		captureWrite(fs, outputFile, &written).Times(1),
		stasher.EXPECT().Take(secretType).Return(hidden, nil).Times(1),
	)

	s := newSecret(fs, stasher, "")
	r, err := s.Restore(inputFile, secretType, outputFile)
	assert.Nil(t, err, "restore error")
	assert.Equal(t, hidden, r, "wrong record")

	c, err := container.Packed(written).Unpack()
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, 4, c.Len(), "wrong chunk count")
	assert.Equal(t, secretType, c.Records()[3].Type().String(), "restored chunk is not last")
}

func TestRestoreFailedWriteKeepsStash(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(baseImage(t), nil).Times(1)
	fs.EXPECT().WriteFile(outputFile, gomock.Any()).Return(os.ErrPermission).Times(1)

	stasher := mocks.NewMockStasher(ctl)
	stasher.EXPECT().Latest(secretType).Return(record(t, secretType, "hidden"), nil).Times(1)

	s := newSecret(fs, stasher, "")
	_, err := s.Restore(inputFile, secretType, outputFile)
	assert.Equal(t, os.ErrPermission, err, "wrong error")
}

func TestRestoreErrors(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fs := mocks.NewMockFilesystem(ctl)

	_, err := newSecret(fs, nil, "").Restore(inputFile, secretType, outputFile)
	assert.Equal(t, fault.ErrNotInitialised, err, "no stash")

	fs.EXPECT().ReadFile(inputFile).Return(baseImage(t), nil).Times(1)
	stasher := mocks.NewMockStasher(ctl)
	stasher.EXPECT().Latest(secretType).Return(nil, fault.ErrNothingStashed).Times(1)

	_, err = newSecret(fs, stasher, "").Restore(inputFile, secretType, outputFile)
	assert.Equal(t, fault.ErrNothingStashed, err, "empty stash")
}

func TestListAndFingerprint(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	packed := baseImage(t)

	fs := mocks.NewMockFilesystem(ctl)
	fs.EXPECT().ReadFile(inputFile).Return(packed, nil).Times(2)

	s := newSecret(fs, nil, "")

	records, err := s.List(inputFile)
	assert.Nil(t, err, "list error")
	assert.Equal(t, 3, len(records), "wrong chunk count")
	assert.Equal(t, "IHDR", records[0].Type().String(), "wrong first chunk")

	fingerprint, err := s.Fingerprint(inputFile)
	assert.Nil(t, err, "fingerprint error")
	assert.Equal(t, container.Packed(packed).Fingerprint(), fingerprint, "wrong fingerprint")
	assert.Equal(t, 2+128, len(fingerprint), "wrong fingerprint length")
}

func TestOSFilesystem(t *testing.T) {
	fs := secret.OSFilesystem{}
	name := filepath.Join(testingDirName, "image.png")

	err := fs.WriteFile(name, baseImage(t))
	assert.Nil(t, err, "write error")

	s := newSecret(fs, nil, secretType)
	_, err = s.Embed(secret.EmbedArguments{
		Input:   name,
		Output:  name,
		Message: "on disk",
	})
	assert.Nil(t, err, "embed error")

	message, err := s.Extract(name, "", "")
	assert.Nil(t, err, "extract error")
	assert.Equal(t, "on disk", message, "wrong message")

	_, err = fs.ReadFile("")
	assert.Equal(t, fault.ErrRequiredFile, err, "empty read name")
	assert.Equal(t, fault.ErrRequiredFile, fs.WriteFile("", nil), "empty write name")

	_, err = s.List(filepath.Join(testingDirName, "no-such-file"))
	assert.True(t, os.IsNotExist(err), "missing file: %v", err)
}
