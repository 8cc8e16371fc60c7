package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentThreading(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCommentService(db)

	owner := createTestUser(t, db, "owner", "user")
	commenter := createTestUser(t, db, "commenter", "user")
	ad := createTestAd(t, db, owner, 1)

	// A root comment anchors its own thread
	root, err := svc.Add(commenter.ID, ad.ID, nil, "is this still available?")
	assert.NoError(t, err)
	assert.NotNil(t, root.RootCommentID)
	assert.Equal(t, root.ID, *root.RootCommentID)
	assert.Nil(t, root.ParentCommentID)
	assert.Equal(t, commenter.ID, root.Commenter.ID, "commenter relation should be loaded")

	// A reply to the root inherits the root
	reply, err := svc.Add(owner.ID, ad.ID, &root.ID, "yes it is")
	assert.NoError(t, err)
	assert.Equal(t, root.ID, *reply.RootCommentID)
	assert.Equal(t, root.ID, *reply.ParentCommentID)

	// A reply to a reply still points at the thread root
	deep, err := svc.Add(commenter.ID, ad.ID, &reply.ID, "great, I'll take it")
	assert.NoError(t, err)
	assert.Equal(t, root.ID, *deep.RootCommentID)
	assert.Equal(t, reply.ID, *deep.ParentCommentID)
}

func TestCommentAddValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCommentService(db)

	owner := createTestUser(t, db, "owner", "user")
	commenter := createTestUser(t, db, "commenter", "user")
	ad := createTestAd(t, db, owner, 1)
	otherAd := createTestAd(t, db, owner, 2)

	_, err := svc.Add(commenter.ID, 4242, nil, "hello?")
	assert.ErrorIs(t, err, ErrAdvertisementNotFound)

	missingParent := uint(4242)
	_, err = svc.Add(commenter.ID, ad.ID, &missingParent, "replying to nothing")
	assert.ErrorIs(t, err, ErrParentCommentNotFound)

	// The parent must belong to the same advertisement
	root, err := svc.Add(commenter.ID, ad.ID, nil, "on the first ad")
	assert.NoError(t, err)
	_, err = svc.Add(commenter.ID, otherAd.ID, &root.ID, "cross-posting")
	assert.ErrorIs(t, err, ErrParentAdMismatch)

	// Replying to a deleted comment is rejected
	assert.NoError(t, svc.Delete(root.ID, commenter))
	_, err = svc.Add(owner.ID, ad.ID, &root.ID, "too late")
	assert.ErrorIs(t, err, ErrParentCommentDeleted)
}

func TestCommentDelete(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCommentService(db)

	owner := createTestUser(t, db, "owner", "user")
	commenter := createTestUser(t, db, "commenter", "user")
	admin := createTestUser(t, db, "admin", "admin")
	stranger := createTestUser(t, db, "stranger", "user")
	ad := createTestAd(t, db, owner, 1)

	root, err := svc.Add(commenter.ID, ad.ID, nil, "rude remark")
	assert.NoError(t, err)
	reply, err := svc.Add(owner.ID, ad.ID, &root.ID, "please don't")
	assert.NoError(t, err)

	// Only the commenter or an admin may delete
	err = svc.Delete(root.ID, stranger)
	assert.ErrorIs(t, err, ErrNotCommenter)

	assert.NoError(t, svc.Delete(root.ID, commenter))

	// The row survives with the commenter nulled and the text replaced
	deleted, err := svc.Get(root.ID)
	assert.NoError(t, err)
	assert.Nil(t, deleted.CommenterID)
	assert.Equal(t, DeletedCommentText, deleted.Text)
	assert.True(t, deleted.IsDeleted())

	// The reply underneath is untouched
	kept, err := svc.Get(reply.ID)
	assert.NoError(t, err)
	assert.Equal(t, "please don't", kept.Text)
	assert.Equal(t, root.ID, *kept.RootCommentID)

	// Deleting twice is a no-op, by anyone
	assert.NoError(t, svc.Delete(root.ID, stranger))

	// An admin may delete someone else's comment
	assert.NoError(t, svc.Delete(reply.ID, admin))
	adminDeleted, err := svc.Get(reply.ID)
	assert.NoError(t, err)
	assert.True(t, adminDeleted.IsDeleted())

	err = svc.Delete(4242, admin)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentListGroupsByThread(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCommentService(db)

	owner := createTestUser(t, db, "owner", "user")
	commenter := createTestUser(t, db, "commenter", "user")
	ad := createTestAd(t, db, owner, 1)

	first, err := svc.Add(commenter.ID, ad.ID, nil, "thread one")
	assert.NoError(t, err)
	second, err := svc.Add(commenter.ID, ad.ID, nil, "thread two")
	assert.NoError(t, err)
	// Reply to the first thread lands after its root despite being created last
	_, err = svc.Add(owner.ID, ad.ID, &first.ID, "reply in thread one")
	assert.NoError(t, err)

	comments, err := svc.ListByAdvertisement(ad.ID)
	assert.NoError(t, err)
	assert.Len(t, comments, 3)
	assert.Equal(t, "thread one", comments[0].Text)
	assert.Equal(t, "reply in thread one", comments[1].Text)
	assert.Equal(t, second.ID, comments[2].ID)

	_, err = svc.ListByAdvertisement(4242)
	assert.ErrorIs(t, err, ErrAdvertisementNotFound)
}
