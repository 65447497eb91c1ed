package internal

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSecureFilename(t *testing.T) {
	assert.Equal(t, "my_photo.png", secureFilename("my photo.png"))
	assert.Equal(t, "passwd", secureFilename("../../etc/passwd"))
	assert.Equal(t, "evil.jpg", secureFilename(`C:\Users\x\evil.jpg`))
	assert.Equal(t, "htaccess", secureFilename(".htaccess"))
}

func TestAllowedFile(t *testing.T) {
	assert.True(t, allowedFile("a.PNG", imageExtensions))
	assert.True(t, allowedFile("photo.jpeg", imageExtensions))
	assert.False(t, allowedFile("archive.tar.gz", imageExtensions))
	assert.False(t, allowedFile("noext", imageExtensions))
	assert.False(t, allowedFile("a.png", nil))
}
