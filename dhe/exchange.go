package dhe

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/nicolas3355/discrete-log-toy/filer"
	"github.com/nicolas3355/discrete-log-toy/generator"
	"github.com/nicolas3355/discrete-log-toy/group"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithFields(logrus.Fields{
	"component": "dhe",
})

// Transcript 盗聴者から見える情報(公開パラメータと双方の公開鍵)だけを持つ
type Transcript struct {
	SessionID       uuid.UUID     `json:"session_id"`
	Q               *big.Int      `json:"q"`
	Generator       group.Element `json:"generator"`
	InitiatorName   string        `json:"initiator_name"`
	InitiatorPublic group.Element `json:"initiator_public"`
	ResponderName   string        `json:"responder_name"`
	ResponderPublic group.Element `json:"responder_public"`
}

// Exchange initiator と responder の間で公開鍵を交換し、共有鍵が一致することを確認する
// 鍵ペアが未生成の当事者はここで生成する(UseSecret 済みならその鍵を使う)
func Exchange(initiator, responder *Party) (*Transcript, error) {
	if initiator == responder {
		return nil, errors.Wrapf(ErrInvalidState, "%s cannot exchange with itself", initiator.name)
	}
	if !initiator.params.Equal(responder.params) {
		return nil, errors.Wrapf(ErrInvalidParams, "%s and %s use different parameters", initiator.name, responder.name)
	}
	// 途中で失敗して片方だけ状態が進まないよう、先に両方の状態を確認する
	for _, p := range []*Party{initiator, responder} {
		if p.state != Uninitialized && p.state != HasKeyPair {
			return nil, errors.Wrapf(ErrInvalidState, "%s is %s", p.name, p.state)
		}
	}

	sessionID := uuid.New()
	logger := logger.WithFields(logrus.Fields{
		"session_id": sessionID.String(),
		"initiator":  initiator.name,
		"responder":  responder.name,
	})

	initiatorPublic, err := ensureKeyPair(initiator)
	if err != nil {
		return nil, err
	}
	responderPublic, err := ensureKeyPair(responder)
	if err != nil {
		return nil, err
	}

	// initiator -> responder, responder -> initiator の順に公開鍵を渡す
	responderShared, err := responder.ReceivePublicKey(initiatorPublic)
	if err != nil {
		return nil, errors.Errorf("%s: %w", responder.name, err)
	}
	initiatorShared, err := initiator.ReceivePublicKey(responderPublic)
	if err != nil {
		return nil, errors.Errorf("%s: %w", initiator.name, err)
	}

	if !initiatorShared.Equal(responderShared) {
		return nil, errors.Wrapf(ErrSharedSecretMismatch, "%s != %s", initiatorShared, responderShared)
	}

	logger.WithFields(logrus.Fields{
		"initiator_public": initiatorPublic.String(),
		"responder_public": responderPublic.String(),
	}).Info("key exchange completed")

	return &Transcript{
		SessionID:       sessionID,
		Q:               new(big.Int).Set(initiator.params.Q),
		Generator:       initiator.params.G,
		InitiatorName:   initiator.name,
		InitiatorPublic: initiatorPublic,
		ResponderName:   responder.name,
		ResponderPublic: responderPublic,
	}, nil
}

func ensureKeyPair(p *Party) (group.Element, error) {
	if p.State() == Uninitialized {
		return p.GenerateKeyPair()
	}
	return p.PublicKey()
}

// Validate 生成元と公開鍵が全て mod 2q+1 の群に属するか
func (t *Transcript) Validate() error {
	if t.Q == nil || t.Q.Sign() <= 0 {
		return errors.Wrap(ErrInvalidParams, "transcript has no q")
	}
	p := new(big.Int).Mul(t.Q, two)
	p.Add(p, one)

	for name, e := range map[string]group.Element{
		"generator":        t.Generator,
		"initiator_public": t.InitiatorPublic,
		"responder_public": t.ResponderPublic,
	} {
		if e.IsZero() || e.Modulus().Cmp(p) != 0 {
			return errors.Wrapf(group.ErrDomainMismatch, "%s %s is not in group mod %s", name, e, p)
		}
	}
	return nil
}

// Save ファイルに書き出す
func (t *Transcript) Save(f filer.JsonFiler, name string) error {
	if err := f.Save(name, t); err != nil {
		return errors.Errorf("save transcript %s: %w", t.SessionID, err)
	}
	return nil
}

// LoadTranscript ファイルから読み込んで検証する
func LoadTranscript(f filer.JsonFiler, name string) (*Transcript, error) {
	t := &Transcript{}
	if err := f.Load(name, t); err != nil {
		return nil, errors.Errorf("load transcript: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Break 公開情報だけから共有鍵を復元する
// 生成元で群を列挙して initiator の秘密鍵を求め、responder の公開鍵に適用する O(order)
func Break(t *Transcript) (group.Element, error) {
	if err := t.Validate(); err != nil {
		return group.Element{}, err
	}

	elems, err := generator.Enumerate(t.Generator)
	if err != nil {
		return group.Element{}, errors.Errorf("enumerate group: %w", err)
	}

	exp, err := RecoverExponent(t.InitiatorPublic, elems)
	if err != nil {
		return group.Element{}, err
	}
	shared, err := DeriveSharedSecret(exp, t.ResponderPublic)
	if err != nil {
		return group.Element{}, err
	}

	logger.WithFields(logrus.Fields{
		"session_id":         t.SessionID.String(),
		"recovered_exponent": exp.String(),
		"shared_secret":      shared.String(),
	}).Warn("shared secret recovered from public keys")
	return shared, nil
}
