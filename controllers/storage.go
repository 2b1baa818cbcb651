package controllers

import "github.com/DiegoFigueSevi/Desarrollo-En-La-Nube-Spotify/helpers"

// deleteFile is a seam over best-effort storage deletion so tests can
// observe it without reaching Cloudinary. The delete handlers never look
// at its outcome: a failed file delete must not block the document delete.
var deleteFile = helpers.DeleteFile
